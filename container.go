package tagpack

import "fmt"

// Container is the outermost unit of exchange: an ordered list of values
// written as an element count followed by each node, with no type tag of
// its own.
type Container struct {
	Values []Value
}

// NewContainer returns a container holding deep copies of vs.
func NewContainer(vs ...Value) *Container {
	c := &Container{Values: make([]Value, 0, len(vs))}
	for _, v := range vs {
		c.Push(v)
	}
	return c
}

// Push appends a deep copy of v.
func (c *Container) Push(v Value) {
	if isNil(v) {
		panic("tagpack: cannot push nil Value")
	}
	c.Values = append(c.Values, Clone(v))
}

func (c *Container) Len() int {
	return len(c.Values)
}

// Equal reports whether both containers hold structurally equal values in
// the same order.
func (c *Container) Equal(other *Container) bool {
	if c == nil || other == nil {
		return c == other
	}
	if len(c.Values) != len(other.Values) {
		return false
	}
	for i := range c.Values {
		if !Equal(c.Values[i], other.Values[i]) {
			return false
		}
	}
	return true
}

// Encode returns the encoding of c in native byte order.
func (c *Container) Encode() []byte {
	return defaultEncoder.EncodeContainer(c)
}

// EncodeContainer returns the encoding of c.
func (e *Encoder) EncodeContainer(c *Container) []byte {
	buf := NewBuffer(e.opts.order)

	// 8 bytes: element count
	e.putWord(buf, uint64(len(c.Values)))

	// Each element is a complete node
	for i, elt := range c.Values {
		if isNil(elt) {
			panic(fmt.Sprintf("tagpack: nil Value at container index %d", i))
		}
		e.EncodeTo(buf, elt)
	}

	return buf.Bytes()
}

// DecodeContainer decodes a container from data using native byte order
// and the default depth limit. Bytes after the last element are ignored.
func DecodeContainer(data []byte) (*Container, error) {
	return defaultDecoder.DecodeContainer(data)
}

// DecodeContainer decodes a container from data. The first element that
// fails to decode fails the whole call.
func (d *Decoder) DecodeContainer(data []byte) (*Container, error) {
	c := NewCursor(data, d.opts.order)

	// Decode the element count
	count, err := d.readWord(c)
	if err != nil {
		return nil, fmt.Errorf("reading container count: %w", err)
	}

	// Decode exactly that many nodes
	values, err := d.decodeValues(c, count, 0)
	if err != nil {
		return nil, fmt.Errorf("decoding container: %w", err)
	}

	if d.opts.strict && c.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d bytes after offset %d", ErrTrailingBytes, c.Remaining(), c.Offset())
	}

	return &Container{Values: values}, nil
}
