package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/justicz/tagpack"
)

func execute(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root, _ := newRootCmd(bytes.NewReader(stdin), &stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 2
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func sample() *tagpack.Container {
	return tagpack.NewContainer(
		tagpack.Integer(42),
		tagpack.Float(2.5),
		tagpack.Text("ab"),
		tagpack.Sequence(tagpack.Integer(1), tagpack.Integer(2)),
	)
}

func TestCheckIdentical(t *testing.T) {
	path := writeFile(t, "raw.bin", sample().Encode())

	out, err := execute(t, nil, "check", path)
	require.NoError(t, err)
	require.Equal(t, "1\n", out)
}

func TestCheckFromStdin(t *testing.T) {
	out, err := execute(t, sample().Encode(), "check", "-")
	require.NoError(t, err)
	require.Equal(t, "1\n", out)
}

func TestCheckTrailingBytesMismatch(t *testing.T) {
	path := writeFile(t, "raw.bin", append(sample().Encode(), 0))

	out, err := execute(t, nil, "check", path)
	require.Equal(t, 1, exitCode(err))
	require.Equal(t, "0\n", out)
}

func TestCheckStrictRejectsTrailingBytes(t *testing.T) {
	path := writeFile(t, "raw.bin", append(sample().Encode(), 0))

	_, err := execute(t, nil, "--strict", "check", path)
	require.Equal(t, 2, exitCode(err))
	require.ErrorIs(t, err, tagpack.ErrTrailingBytes)
}

func TestCheckCorruptFile(t *testing.T) {
	raw := sample().Encode()
	path := writeFile(t, "raw.bin", raw[:len(raw)-1])

	_, err := execute(t, nil, "check", path)
	require.Equal(t, 2, exitCode(err))
	require.ErrorIs(t, err, tagpack.ErrTruncatedInput)
}

func TestCheckMissingFile(t *testing.T) {
	_, err := execute(t, nil, "check", filepath.Join(t.TempDir(), "missing.bin"))
	require.Equal(t, 2, exitCode(err))
}

func TestCheckByteOrder(t *testing.T) {
	be := tagpack.NewEncoder(tagpack.WithByteOrder(binary.BigEndian))
	path := writeFile(t, "raw.bin", be.EncodeContainer(sample()))

	out, err := execute(t, nil, "--byte-order", "big", "check", path)
	require.NoError(t, err)
	require.Equal(t, "1\n", out)
}

func TestBadFlags(t *testing.T) {
	path := writeFile(t, "raw.bin", sample().Encode())

	_, err := execute(t, nil, "--byte-order", "middle", "check", path)
	require.Error(t, err)

	_, err = execute(t, nil, "--log-level", "loud", "check", path)
	require.Error(t, err)
}

func TestDumpAndPack(t *testing.T) {
	raw := sample().Encode()
	path := writeFile(t, "raw.bin", raw)

	dumped, err := execute(t, nil, "dump", path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(dumped, "- 42\n"), dumped)

	yamlPath := writeFile(t, "raw.yaml", []byte(dumped))
	outPath := filepath.Join(t.TempDir(), "out.bin")

	_, err = execute(t, nil, "pack", yamlPath, "-o", outPath)
	require.NoError(t, err)

	packed, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, raw, packed)
}

func TestPackToStdout(t *testing.T) {
	out, err := execute(t, []byte("- 1\n- [x]\n"), "pack", "-")
	require.NoError(t, err)

	want := tagpack.NewContainer(tagpack.Integer(1), tagpack.Sequence(tagpack.Text("x")))
	require.Equal(t, want.Encode(), []byte(out))
}

func TestPackInvalidYAML(t *testing.T) {
	_, err := execute(t, []byte("key: value\n"), "pack", "-")
	require.Error(t, err)
}

func TestRunExitCodes(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 2, run([]string{"check"}, nil, &stdout, &stderr))
	require.Equal(t, 2, run([]string{"check", filepath.Join(t.TempDir(), "missing.bin")}, nil, &stdout, &stderr))

	path := writeFile(t, "raw.bin", sample().Encode())
	require.Equal(t, 0, run([]string{"check", path}, nil, &stdout, &stderr))
}

func TestRunLogsToOwnStderr(t *testing.T) {
	before := slog.Default()

	var stdout, stderr bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing.bin")
	require.Equal(t, 2, run([]string{"--log-level", "debug", "check", missing}, nil, &stdout, &stderr))

	// The error goes to the writer run was given, and the process-wide
	// logger is left alone
	require.Contains(t, stderr.String(), "level=ERROR")
	require.Contains(t, stderr.String(), "missing.bin")
	require.Same(t, before, slog.Default())
}

func TestRunLogsFlagErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 2, run([]string{"--byte-order", "middle", "check", "x"}, nil, &stdout, &stderr))
	require.Contains(t, stderr.String(), "middle")
}
