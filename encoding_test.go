package tagpack

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// words packs each argument as an 8-byte little endian word
func words(ws ...uint64) []byte {
	var out []byte
	for _, w := range ws {
		out = binary.LittleEndian.AppendUint64(out, w)
	}
	return out
}

func join(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var le = NewEncoder(WithByteOrder(binary.LittleEndian))

func TestCanEncodeInteger(t *testing.T) {
	enc := le.Encode(Integer(42))
	require.Equal(t, []byte{
		0, 0, 0, 0, 0, 0, 0, 0,
		0x2A, 0, 0, 0, 0, 0, 0, 0,
	}, enc)
}

func TestCanEncodeFloatBits(t *testing.T) {
	nan := math.Float64frombits(0x7ff8_0000_dead_beef)

	for _, f := range []float64{0, math.Copysign(0, -1), 1.5, math.Inf(-1), nan} {
		enc := le.Encode(Float(f))
		require.Equal(t, words(uint64(TypeFloat64), math.Float64bits(f)), enc)
	}
}

func TestCanEncodeString(t *testing.T) {
	enc := le.Encode(Text("ab"))
	require.Equal(t, join(words(uint64(TypeString), 2), []byte("ab")), enc)
}

func TestCanEncodeEmptyString(t *testing.T) {
	require.Equal(t, words(uint64(TypeString), 0), le.Encode(Text("")))
	require.Equal(t, words(uint64(TypeString), 0), le.Encode(StringValue{}))
}

func TestCanEncodeSequence(t *testing.T) {
	enc := le.Encode(Sequence(Integer(1), Integer(2)))
	require.Equal(t, words(
		uint64(TypeSequence), 2,
		uint64(TypeUint64), 1,
		uint64(TypeUint64), 2,
	), enc)
}

func TestCanEncodeNestedSequences(t *testing.T) {
	inner := Sequence(Text("x"), Sequence())
	outer := Sequence(Float(2), inner)

	enc := le.Encode(outer)
	require.Equal(t, join(
		words(uint64(TypeSequence), 2),
		words(uint64(TypeFloat64), math.Float64bits(2)),
		words(uint64(TypeSequence), 2),
		words(uint64(TypeString), 1), []byte("x"),
		words(uint64(TypeSequence), 0),
	), enc)
}

func TestDefaultEncodingIsNativeOrder(t *testing.T) {
	want := binary.NativeEndian.AppendUint64(nil, uint64(TypeUint64))
	want = binary.NativeEndian.AppendUint64(want, 0x0102030405060708)
	require.Equal(t, want, Encode(Integer(0x0102030405060708)))
}

func TestBigEndianEncoding(t *testing.T) {
	be := NewEncoder(WithByteOrder(binary.BigEndian))
	require.Equal(t, []byte{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0x2A,
	}, be.Encode(Integer(42)))
}

func TestEncodeToAppends(t *testing.T) {
	buf := NewBuffer(binary.LittleEndian)
	buf.AppendBytes([]byte{0xFF})

	le.EncodeTo(buf, Integer(7))
	require.Equal(t, join([]byte{0xFF}, words(uint64(TypeUint64), 7)), buf.Bytes())
	require.Equal(t, 17, buf.Len())
}

func TestEncodeToUsesEncoderOrder(t *testing.T) {
	be := NewEncoder(WithByteOrder(binary.BigEndian))

	// The buffer was built for a different order; the encoder's wins
	for _, buf := range []*Buffer{NewBuffer(nil), NewBuffer(binary.LittleEndian)} {
		be.EncodeTo(buf, Sequence(Integer(42)))
		require.Equal(t, be.Encode(Sequence(Integer(42))), buf.Bytes())
	}

	buf := NewBuffer(binary.BigEndian)
	le.EncodeTo(buf, Integer(42))
	require.Equal(t, words(uint64(TypeUint64), 42), buf.Bytes())
}

func TestEncodeContainerUsesEncoderOrder(t *testing.T) {
	be := NewEncoder(WithByteOrder(binary.BigEndian))
	enc := be.EncodeContainer(NewContainer(Integer(1)))
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, enc[:8])
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, enc[16:24])
}

func TestEncodePointerForms(t *testing.T) {
	i := Integer(9)
	s := Text("p")
	require.Equal(t, le.Encode(i), le.Encode(&i))
	require.Equal(t, le.Encode(s), le.Encode(&s))
	require.Equal(t, le.Encode(*Sequence(i)), le.Encode(Sequence(i)))
}

func TestCannotEncodeNil(t *testing.T) {
	require.Panics(t, func() { le.Encode(nil) })
	require.Panics(t, func() { le.Encode(&SequenceValue{Values: []Value{nil}}) })
	require.PanicsWithValue(t, "tagpack: cannot encode nil Value", func() { le.Encode((*IntegerValue)(nil)) })
	require.Panics(t, func() { le.Encode(&SequenceValue{Values: []Value{(*StringValue)(nil)}}) })
	require.Panics(t, func() { NewContainer().Push((*SequenceValue)(nil)) })
}
