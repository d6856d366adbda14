package tagpack

import (
	"bytes"
	"fmt"
	"math"
)

// TypeTag identifies the variant of an encoded node. It is written as the
// first 8 bytes of every node.
type TypeTag uint64

const (
	TypeUint64   TypeTag = 0
	TypeFloat64  TypeTag = 1
	TypeString   TypeTag = 2
	TypeSequence TypeTag = 3
)

func (t TypeTag) String() string {
	switch t {
	case TypeUint64:
		return "uint64"
	case TypeFloat64:
		return "float64"
	case TypeString:
		return "string"
	case TypeSequence:
		return "sequence"
	default:
		return fmt.Sprintf("TypeTag(%d)", uint64(t))
	}
}

// Valid reports whether t is one of the four known discriminants.
func (t TypeTag) Valid() bool {
	return t <= TypeSequence
}

// Value is a single tagged node. The set of implementations is closed:
// IntegerValue, FloatValue, StringValue and SequenceValue (or a pointer
// to one of them). A nil pointer of any variant is treated as a nil
// Value: Equal and Clone accept it, encoding it panics.
type Value interface {
	Type() TypeTag
	encode(e *Encoder, buf *Buffer)
}

type IntegerValue struct {
	Value uint64
}

type FloatValue struct {
	Value float64
}

// StringValue holds an arbitrary byte string. The bytes are not required
// to be valid text.
type StringValue struct {
	Bytes []byte
}

// SequenceValue is an ordered list of child values, which may be of
// different kinds.
type SequenceValue struct {
	Values []Value
}

func (IntegerValue) Type() TypeTag  { return TypeUint64 }
func (FloatValue) Type() TypeTag    { return TypeFloat64 }
func (StringValue) Type() TypeTag   { return TypeString }
func (SequenceValue) Type() TypeTag { return TypeSequence }

// Integer wraps an unsigned 64-bit integer.
func Integer(v uint64) IntegerValue {
	return IntegerValue{Value: v}
}

// Float wraps a 64-bit float. The exact bit pattern is preserved, NaN
// payloads included.
func Float(v float64) FloatValue {
	return FloatValue{Value: v}
}

// String wraps a copy of b, so later writes to b do not affect the value.
func String(b []byte) StringValue {
	// Copy so the value owns its payload
	owned := make([]byte, len(b))
	copy(owned, b)
	return StringValue{Bytes: owned}
}

// Text is String for a Go string.
func Text(s string) StringValue {
	return StringValue{Bytes: []byte(s)}
}

// Sequence builds a sequence from deep copies of vs. More elements can be
// added later with Append.
func Sequence(vs ...Value) *SequenceValue {
	s := &SequenceValue{Values: make([]Value, 0, len(vs))}
	s.Append(vs...)
	return s
}

// Append adds deep copies of vs to the end of the sequence.
func (s *SequenceValue) Append(vs ...Value) {
	for _, v := range vs {
		s.Values = append(s.Values, Clone(v))
	}
}

// Len returns the number of elements in the sequence.
func (s SequenceValue) Len() int {
	return len(s.Values)
}

// Clone returns a deep copy of v. Pointers to sequences are copied into
// fresh sequences, so the result never shares storage with v. Cloning a
// nil Value returns nil.
func Clone(v Value) Value {
	if isNil(v) {
		return nil
	}

	switch tv := v.(type) {
	case IntegerValue, FloatValue:
		return tv
	case *IntegerValue:
		return *tv
	case *FloatValue:
		return *tv
	case StringValue:
		return String(tv.Bytes)
	case *StringValue:
		return String(tv.Bytes)
	case SequenceValue:
		return cloneSequence(tv)
	case *SequenceValue:
		return cloneSequence(*tv)
	default:
		panic(fmt.Sprintf("tagpack: unknown value type %T", v))
	}
}

func cloneSequence(s SequenceValue) *SequenceValue {
	out := &SequenceValue{Values: make([]Value, len(s.Values))}
	for i, child := range s.Values {
		out.Values[i] = Clone(child)
	}
	return out
}

// Equal reports whether a and b are structurally identical. Floats are
// compared by bit pattern, so a NaN equals an identical NaN and 0 does not
// equal -0. Pointer and non-pointer forms of the same variant compare by
// content.
func Equal(a, b Value) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}

	// Different variants are never equal
	if a.Type() != b.Type() {
		return false
	}

	switch av := deref(a).(type) {
	case IntegerValue:
		return av.Value == deref(b).(IntegerValue).Value
	case FloatValue:
		bv := deref(b).(FloatValue)
		return math.Float64bits(av.Value) == math.Float64bits(bv.Value)
	case StringValue:
		return bytes.Equal(av.Bytes, deref(b).(StringValue).Bytes)
	case SequenceValue:
		bv := deref(b).(SequenceValue)
		if len(av.Values) != len(bv.Values) {
			return false
		}
		for i := range av.Values {
			if !Equal(av.Values[i], bv.Values[i]) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("tagpack: unknown value type %T", a))
	}
}

// isNil reports whether v is nil or a nil pointer to one of the variants.
func isNil(v Value) bool {
	switch tv := v.(type) {
	case nil:
		return true
	case *IntegerValue:
		return tv == nil
	case *FloatValue:
		return tv == nil
	case *StringValue:
		return tv == nil
	case *SequenceValue:
		return tv == nil
	default:
		return false
	}
}

// deref strips a pointer from any of the four variants. v must not be
// nil.
func deref(v Value) Value {
	switch tv := v.(type) {
	case *IntegerValue:
		return *tv
	case *FloatValue:
		return *tv
	case *StringValue:
		return *tv
	case *SequenceValue:
		return *tv
	default:
		return v
	}
}
