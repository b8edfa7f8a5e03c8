// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipedPrompter(t *testing.T, input string) (*TerminalPrompter, *bytes.Buffer) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o600))
	in, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { in.Close() })

	var out bytes.Buffer
	return NewTerminalPrompter(in, &out), &out
}

func TestTerminalPrompter_PipedInput(t *testing.T) {
	p, out := pipedPrompter(t, "s3cret\r\nalice\nfirst line\nsecond line\n")

	password, err := p.Password("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", password)

	login, err := p.Line("Login: ")
	require.NoError(t, err)
	assert.Equal(t, "alice", login)

	text, err := p.Text("Text:\n")
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line", text)

	assert.Equal(t, "Password: Login: Text:\n", out.String())
}

func TestTerminalPrompter_LastLineWithoutNewline(t *testing.T) {
	p, _ := pipedPrompter(t, "exit")

	line, err := p.Line("> ")
	require.NoError(t, err)
	assert.Equal(t, "exit", line)

	_, err = p.Line("> ")
	assert.ErrorIs(t, err, io.EOF)
}
