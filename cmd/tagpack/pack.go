package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/justicz/tagpack"
)

func newPackCmd(e *env) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pack FILE.yaml",
		Short: "encode a YAML container to binary",
		Long: `pack reads a YAML sequence in the form written by dump and writes
the binary container to --output, or to stdout if no output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(e, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the container to this file instead of stdout")
	return cmd
}

func runPack(e *env, path, output string) error {
	src, err := readInput(e, path)
	if err != nil {
		return err
	}

	var c tagpack.Container
	if err := yaml.Unmarshal(src, &c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out := e.enc.EncodeContainer(&c)
	e.logger.Debug("packed container", "file", path, "values", c.Len(), "bytes", len(out))

	if output == "" {
		_, err = e.stdout.Write(out)
		return err
	}
	return os.WriteFile(output, out, 0o644)
}

// readInput reads the named file, or stdin when path is "-".
func readInput(e *env, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(e.stdin)
	}
	return os.ReadFile(path)
}
