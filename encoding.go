package tagpack

import (
	"fmt"
	"math"
)

// Encoder writes values and containers. It holds no mutable state and may
// be shared between goroutines.
type Encoder struct {
	opts options
}

// NewEncoder returns an Encoder configured by opts.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{opts: buildOptions(opts)}
}

var defaultEncoder = NewEncoder()

// Encode returns the encoding of v in native byte order.
func Encode(v Value) []byte {
	return defaultEncoder.Encode(v)
}

// Encode returns the encoding of v.
func (e *Encoder) Encode(v Value) []byte {
	buf := NewBuffer(e.opts.order)
	e.EncodeTo(buf, v)
	return buf.Bytes()
}

// EncodeTo appends the encoding of v to buf. Words are written in the
// encoder's byte order whatever order buf was created with.
func (e *Encoder) EncodeTo(buf *Buffer, v Value) {
	if isNil(v) {
		panic("tagpack: cannot encode nil Value")
	}

	// Every node starts with its type tag
	e.putWord(buf, uint64(v.Type()))

	// The payload follows
	v.encode(e, buf)
}

func (e *Encoder) putWord(buf *Buffer, v uint64) {
	buf.appendWord(e.opts.order, v)
}

func (pv IntegerValue) encode(e *Encoder, buf *Buffer) {
	// 8 bytes: the integer value
	e.putWord(buf, pv.Value)
}

func (pv FloatValue) encode(e *Encoder, buf *Buffer) {
	// 8 bytes: the raw IEEE-754 bits, NaN payload included
	e.putWord(buf, math.Float64bits(pv.Value))
}

func (pv StringValue) encode(e *Encoder, buf *Buffer) {
	// 8 bytes: data length
	e.putWord(buf, uint64(len(pv.Bytes)))

	// Rest of bytes are data
	buf.AppendBytes(pv.Bytes)
}

func (pv SequenceValue) encode(e *Encoder, buf *Buffer) {
	// 8 bytes: element count
	e.putWord(buf, uint64(len(pv.Values)))

	// Each element is a complete node
	for i, elt := range pv.Values {
		if isNil(elt) {
			panic(fmt.Sprintf("tagpack: nil Value at sequence index %d", i))
		}
		e.EncodeTo(buf, elt)
	}
}
