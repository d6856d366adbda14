package tagpack

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// wordSize is the width of every tag, length and count on the wire, and
// of both numeric payloads
const wordSize = 8

// minNodeSize is the smallest possible encoded node: a tag plus an 8-byte
// payload, length or count
const minNodeSize = 2 * wordSize

var ErrTruncatedInput = errors.New("truncated input")
var ErrUnknownType = errors.New("unknown type tag")
var ErrDepthExceeded = errors.New("sequence nesting too deep")
var ErrTrailingBytes = errors.New("trailing bytes after encoded data")

// ByteOrder is the layout of every 8-byte word on the wire.
// binary.NativeEndian, binary.LittleEndian and binary.BigEndian all
// satisfy it.
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Buffer is an append-only byte sink used as the encode target.
type Buffer struct {
	order ByteOrder
	b     []byte
}

// NewBuffer returns an empty buffer that writes 8-byte words in the
// given byte order. A nil order means the native order.
func NewBuffer(order ByteOrder) *Buffer {
	if order == nil {
		order = binary.NativeEndian
	}
	return &Buffer{order: order}
}

// AppendBytes appends p verbatim.
func (b *Buffer) AppendBytes(p []byte) {
	b.b = append(b.b, p...)
}

// AppendUint64 appends v as an 8-byte word in the buffer's byte order.
func (b *Buffer) AppendUint64(v uint64) {
	b.appendWord(b.order, v)
}

// appendWord appends v as an 8-byte word in the given order.
func (b *Buffer) appendWord(order ByteOrder, v uint64) {
	b.b = order.AppendUint64(b.b, v)
}

// Bytes returns the accumulated bytes. The slice aliases the buffer's
// storage until the next append.
func (b *Buffer) Bytes() []byte {
	return b.b
}

func (b *Buffer) Len() int {
	return len(b.b)
}

// Cursor is a bounds-checked read position within a fixed byte range.
// Reads never copy; returned slices alias the underlying data.
type Cursor struct {
	order ByteOrder
	data  []byte
	off   int
}

// NewCursor returns a cursor positioned at the start of data. A nil
// order means the native order.
func NewCursor(data []byte, order ByteOrder) *Cursor {
	if order == nil {
		order = binary.NativeEndian
	}
	return &Cursor{order: order, data: data}
}

// Offset is the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining is the number of bytes between the cursor and the end.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.off
}

// ReadExact returns the next n bytes and advances past them, or fails
// with ErrTruncatedInput if fewer than n bytes remain. A failed read does
// not move the cursor.
func (c *Cursor) ReadExact(n uint64) ([]byte, error) {
	// Compare in uint64 so that a huge declared length can't wrap an int
	if n > uint64(c.Remaining()) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedInput, n, c.off, c.Remaining())
	}

	out := c.data[c.off : c.off+int(n)]
	c.off += int(n)
	return out, nil
}

// ReadUint64 reads one 8-byte word in the cursor's byte order.
func (c *Cursor) ReadUint64() (uint64, error) {
	return c.readWord(c.order)
}

// readWord reads one 8-byte word in the given order.
func (c *Cursor) readWord(order ByteOrder) (uint64, error) {
	word, err := c.ReadExact(wordSize)
	if err != nil {
		return 0, err
	}
	return order.Uint64(word), nil
}
