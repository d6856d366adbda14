package tagpack

import "encoding/binary"

// DefaultMaxDepth is the default limit on sequence nesting accepted by a
// Decoder.
const DefaultMaxDepth = 4096

type options struct {
	order    ByteOrder
	maxDepth int
	strict   bool
}

func defaultOptions() options {
	return options{
		order:    binary.NativeEndian,
		maxDepth: DefaultMaxDepth,
	}
}

// Option configures an Encoder or a Decoder.
type Option func(*options)

// WithByteOrder sets the layout of every 8-byte word. The default is the
// host's native order, which makes the format architecture-dependent;
// pass binary.LittleEndian or binary.BigEndian for a portable stream.
func WithByteOrder(order ByteOrder) Option {
	return func(o *options) {
		if order != nil {
			o.order = order
		}
	}
}

// WithMaxDepth limits how deeply sequences may nest during decoding. A
// top-level sequence is depth 1. Zero or a negative value removes the
// limit. Encoders ignore it.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithStrict makes decoding fail with ErrTrailingBytes when input remains
// after the decoded value or container. Encoders ignore it.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
