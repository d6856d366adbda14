package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDumpCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "print the container in FILE as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(e, args[0])
		},
	}
}

func runDump(e *env, path string) error {
	raw, err := readInput(e, path)
	if err != nil {
		return err
	}

	c, err := e.dec.DecodeContainer(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	enc := yaml.NewEncoder(e.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
