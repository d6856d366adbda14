package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "verify that FILE re-encodes to identical bytes",
		Long: `check decodes FILE as a container, encodes the result again and
compares it with the original bytes. It prints 1 when they are identical
and 0 otherwise.

The exit status is 0 on identity, 1 on a mismatch and 2 if FILE can't be
read or decoded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(e, args[0])
		},
	}
}

func runCheck(e *env, path string) error {
	raw, err := readInput(e, path)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	c, err := e.dec.DecodeContainer(raw)
	if err != nil {
		return &exitError{code: 2, err: fmt.Errorf("%s: %w", path, err)}
	}
	e.logger.Debug("decoded container", "file", path, "bytes", len(raw), "values", c.Len())

	reencoded := e.enc.EncodeContainer(c)
	if !bytes.Equal(raw, reencoded) {
		e.logger.Info("re-encoded bytes differ", "file", path, "original", len(raw), "reencoded", len(reencoded), "first_diff", firstDiff(raw, reencoded))
		fmt.Fprintln(e.stdout, 0)
		return &exitError{code: 1}
	}

	fmt.Fprintln(e.stdout, 1)
	return nil
}

// firstDiff returns the offset of the first byte where a and b differ.
func firstDiff(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
