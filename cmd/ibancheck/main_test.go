package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runCLI(args []string, stdin string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Args(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI([]string{"DE89370400440532013000", "gb82 west 1234 5698 7654 32"}, "")
	assert.Equal(t, exitOK, code)
	assert.Equal(t,
		"DE89370400440532013000\tOK\tDE89370400440532013000\n"+
			"gb82 west 1234 5698 7654 32\tOK\tGB82WEST12345698765432\n",
		out)
}

func TestRun_MixedInputFromStdin(t *testing.T) {
	t.Parallel()

	stdin := "DE89 3704 0044 0532 0130 00\n\n  \nGB00WEST12345698765432\nXX\nXX89370400440532013000\n"
	code, out, _ := runCLI(nil, stdin)

	assert.Equal(t, exitInvalid, code)
	assert.Equal(t, []string{
		"DE89 3704 0044 0532 0130 00\tOK\tDE89370400440532013000",
		"GB00WEST12345698765432\tINVALID\tchecksum_mismatch",
		"XX\tINVALID\ttoo_short",
		"XX89370400440532013000\tINVALID\tunknown_country",
	}, strings.Split(strings.TrimRight(out, "\n"), "\n"))
}

func TestRun_Strict(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI([]string{"-strict", "DE89 3704 0044 0532 0130 00"}, "")
	assert.Equal(t, exitInvalid, code)
	assert.Equal(t, "DE89 3704 0044 0532 0130 00\tINVALID\tinvalid_account_identifier\n", out)

	code, _, _ = runCLI([]string{"-strict", "  DE89370400440532013000  "}, "")
	assert.Equal(t, exitOK, code)
}

func TestRun_Human(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI([]string{"-human", "NO9386011117947"}, "")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "NO9386011117947\tOK\tNO93 8601 1117 947\n", out)
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	code, out, errOut := runCLI([]string{"-nope"}, "")
	assert.Equal(t, exitUsage, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "usage: ibancheck")

	code, _, errOut = runCLI([]string{"-h"}, "")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, errOut, "-strict")
}

func TestRun_EmptyStdin(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI(nil, "")
	assert.Equal(t, exitOK, code)
	assert.Empty(t, out)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRun_ReadError(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(nil, failingReader{}, &stdout, &stderr)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "broken pipe")
}
