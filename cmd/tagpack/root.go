package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/justicz/tagpack"
)

// config holds the flags shared by every subcommand.
type config struct {
	byteOrder string
	maxDepth  int
	strict    bool
	logLevel  string
}

func (c *config) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.byteOrder, "byte-order", "native", "byte order of 8-byte words: native, little or big")
	fs.IntVar(&c.maxDepth, "max-depth", tagpack.DefaultMaxDepth, "maximum sequence nesting accepted when decoding (0 for no limit)")
	fs.BoolVar(&c.strict, "strict", false, "reject trailing bytes after the container")
	fs.StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
}

// options translates the flags into codec options.
func (c *config) options() ([]tagpack.Option, error) {
	var order tagpack.ByteOrder
	switch strings.ToLower(c.byteOrder) {
	case "native", "":
		order = binary.NativeEndian
	case "little", "le":
		order = binary.LittleEndian
	case "big", "be":
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("unknown byte order %q", c.byteOrder)
	}

	return []tagpack.Option{
		tagpack.WithByteOrder(order),
		tagpack.WithMaxDepth(c.maxDepth),
		tagpack.WithStrict(c.strict),
	}, nil
}

func (c *config) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", c.logLevel)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// env is what a subcommand needs at run time.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	logger *slog.Logger
	enc    *tagpack.Encoder
	dec    *tagpack.Decoder
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) (*cobra.Command, *env) {
	cfg := &config{}
	e := &env{stdin: stdin, stdout: stdout}

	root := &cobra.Command{
		Use:   "tagpack",
		Short: "tagpack inspects and produces tagpack binary containers.",
		Long: `tagpack works with files holding a tagpack container: an element
count followed by tagged uint64, float64, byte string and sequence nodes.

Numeric words are in the host's native byte order unless --byte-order
says otherwise, so files are only portable between hosts of the same
endianness.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := cfg.logger(stderr)
			if err != nil {
				return err
			}
			e.logger = logger

			opts, err := cfg.options()
			if err != nil {
				return err
			}
			e.enc = tagpack.NewEncoder(opts...)
			e.dec = tagpack.NewDecoder(opts...)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	cfg.addFlags(root.PersistentFlags())

	root.AddCommand(
		newCheckCmd(e),
		newDumpCmd(e),
		newPackCmd(e),
	)
	return root, e
}
