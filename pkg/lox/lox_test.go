package lox

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFile_SuccessExitsZeroAndPrintsOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.lox")
	require.NoError(t, os.WriteFile(path, []byte("print 1 + 2 * 3;"), 0o644))

	var stdout, stderr bytes.Buffer
	runner := NewWithStreams(&stdout, &stderr)
	code := runner.RunFile(path)

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "7\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunFile_ParseErrorExits65AndDoesNotExecute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lox")
	require.NoError(t, os.WriteFile(path, []byte("print 1 +;"), 0o644))

	var stdout, stderr bytes.Buffer
	runner := NewWithStreams(&stdout, &stderr)
	code := runner.RunFile(path)

	assert.Equal(t, ExitSourceError, code)
	assert.Empty(t, stdout.String(), "a statement that failed to parse must never be interpreted")
	assert.Contains(t, stderr.String(), "Error")
}

func TestRunFile_RuntimeErrorExits65(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runtime.lox")
	require.NoError(t, os.WriteFile(path, []byte("print undefined;"), 0o644))

	var stdout, stderr bytes.Buffer
	runner := NewWithStreams(&stdout, &stderr)
	code := runner.RunFile(path)

	assert.Equal(t, ExitSourceError, code)
	assert.Contains(t, stderr.String(), "Undefined variable 'undefined'.")
}

func TestRunFile_MissingFileIsSourceError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	runner := NewWithStreams(&stdout, &stderr)
	code := runner.RunFile(filepath.Join(t.TempDir(), "nope.lox"))

	assert.Equal(t, ExitSourceError, code)
	assert.NotEmpty(t, stderr.String())
}

// Diagnostic format per spec.md §6: "[line N] Error <loc>: <message>".
func TestRunFile_DiagnosticFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lox")
	require.NoError(t, os.WriteFile(path, []byte("1 @ 2;"), 0o644))

	var stdout, stderr bytes.Buffer
	runner := NewWithStreams(&stdout, &stderr)
	runner.RunFile(path)

	assert.Contains(t, stderr.String(), "[line 1] Error: Unexpected character.")
}

func TestRunSource_PersistsVariablesAcrossCalls(t *testing.T) {
	var stdout, stderr bytes.Buffer
	runner := NewWithStreams(&stdout, &stderr)

	ok, hadStaticError := runner.runSource("var x = 1;")
	require.True(t, ok)
	require.False(t, hadStaticError)

	stdout.Reset()
	ok, hadStaticError = runner.runSource("print x;")
	require.True(t, ok)
	require.False(t, hadStaticError)
	assert.Equal(t, "1\n", stdout.String())
}

func TestRunSource_ContinuesAfterErrorLikeAREPLTurn(t *testing.T) {
	var stdout, stderr bytes.Buffer
	runner := NewWithStreams(&stdout, &stderr)

	runner.runSource("print undefined;")
	stdout.Reset()
	ok, hadStaticError := runner.runSource("print 1;")

	assert.True(t, ok)
	assert.False(t, hadStaticError)
	assert.Equal(t, "1\n", stdout.String())
}
