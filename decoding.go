package tagpack

import (
	"fmt"
	"math"
)

// Decoder reads values and containers. It holds no mutable state and may
// be shared between goroutines.
type Decoder struct {
	opts options
}

// NewDecoder returns a Decoder configured by opts.
func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{opts: buildOptions(opts)}
}

var defaultDecoder = NewDecoder()

// DecodeValue decodes one node from the start of data using native byte
// order and the default depth limit. It returns the value and the number
// of bytes consumed.
func DecodeValue(data []byte) (Value, int, error) {
	return defaultDecoder.DecodeValue(data)
}

// DecodeValue decodes one node from the start of data, returning the
// value and the number of bytes consumed.
func (d *Decoder) DecodeValue(data []byte) (Value, int, error) {
	c := NewCursor(data, d.opts.order)

	v, err := d.DecodeFrom(c)
	if err != nil {
		return nil, 0, err
	}

	if d.opts.strict && c.Remaining() != 0 {
		return nil, 0, fmt.Errorf("%w: %d bytes after offset %d", ErrTrailingBytes, c.Remaining(), c.Offset())
	}

	return v, c.Offset(), nil
}

// DecodeFrom decodes one node at the cursor and advances it past the
// consumed bytes. Words are read in the decoder's byte order whatever
// order c was created with. On failure the cursor position is unspecified.
func (d *Decoder) DecodeFrom(c *Cursor) (Value, error) {
	return d.decodeNode(c, 0)
}

func (d *Decoder) readWord(c *Cursor) (uint64, error) {
	return c.readWord(d.opts.order)
}

func (d *Decoder) decodeNode(c *Cursor, depth int) (Value, error) {
	// Read in the 8-byte tag
	start := c.Offset()
	rawTag, err := d.readWord(c)
	if err != nil {
		return nil, fmt.Errorf("reading type tag: %w", err)
	}

	// Ensure it's one we know
	tag := TypeTag(rawTag)
	if !tag.Valid() {
		return nil, fmt.Errorf("%w: %d at offset %d", ErrUnknownType, rawTag, start)
	}

	switch tag {
	case TypeUint64:
		return d.decodeUint64(c)
	case TypeFloat64:
		return d.decodeFloat64(c)
	case TypeString:
		return d.decodeString(c)
	case TypeSequence:
		s, err := d.decodeSequence(c, depth+1)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		panic(fmt.Sprintf("tagpack: unhandled type tag %s", tag))
	}
}

func (d *Decoder) decodeUint64(c *Cursor) (IntegerValue, error) {
	// Read in the 8-byte payload
	v, err := d.readWord(c)
	if err != nil {
		return IntegerValue{}, fmt.Errorf("reading uint64 payload: %w", err)
	}

	return IntegerValue{Value: v}, nil
}

func (d *Decoder) decodeFloat64(c *Cursor) (FloatValue, error) {
	// Read in the 8-byte payload
	bits, err := d.readWord(c)
	if err != nil {
		return FloatValue{}, fmt.Errorf("reading float64 payload: %w", err)
	}

	// Reinterpret the bits without any normalization
	return FloatValue{Value: math.Float64frombits(bits)}, nil
}

func (d *Decoder) decodeString(c *Cursor) (StringValue, error) {
	// Decode the length
	length, err := d.readWord(c)
	if err != nil {
		return StringValue{}, fmt.Errorf("reading string length: %w", err)
	}

	// Read the requested number of bytes
	data, err := c.ReadExact(length)
	if err != nil {
		return StringValue{}, fmt.Errorf("reading string payload: %w", err)
	}

	// Copy out so the value does not alias the input
	return String(data), nil
}

func (d *Decoder) decodeSequence(c *Cursor, depth int) (*SequenceValue, error) {
	// Refuse to recurse past the configured limit
	if d.opts.maxDepth > 0 && depth > d.opts.maxDepth {
		return nil, fmt.Errorf("%w: depth %d at offset %d, max is %d", ErrDepthExceeded, depth, c.Offset(), d.opts.maxDepth)
	}

	// Decode the element count
	count, err := d.readWord(c)
	if err != nil {
		return nil, fmt.Errorf("reading sequence count: %w", err)
	}

	values, err := d.decodeValues(c, count, depth)
	if err != nil {
		return nil, err
	}

	return &SequenceValue{Values: values}, nil
}

// decodeValues decodes exactly count consecutive nodes.
func (d *Decoder) decodeValues(c *Cursor, count uint64, depth int) ([]Value, error) {
	// Don't trust the declared count for allocation: only as many nodes as
	// could fit in the remaining bytes are preallocated
	capacity := count
	if fit := uint64(c.Remaining() / minNodeSize); capacity > fit {
		capacity = fit
	}
	values := make([]Value, 0, capacity)

	for i := uint64(0); i < count; i++ {
		v, err := d.decodeNode(c, depth)
		if err != nil {
			return nil, fmt.Errorf("element %d of %d: %w", i, count, err)
		}
		values = append(values, v)
	}

	return values, nil
}
