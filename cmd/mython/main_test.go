package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSourcePrefersEvalString(t *testing.T) {
	src, err := readSource("print 1", []string{"ignored.my"})
	require.NoError(t, err)
	assert.Equal(t, "print 1", src)
}

func TestReadSourceErrorsWithNoInput(t *testing.T) {
	_, err := readSource("", nil)
	require.Error(t, err)
}

func TestReadSourceReadsFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "*.my")
	require.NoError(t, err)
	_, err = f.WriteString("print 1\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	src, err := readSource("", []string{f.Name()})
	require.NoError(t, err)
	assert.Equal(t, "print 1\n", src)
}

func TestPrintTokensWritesEveryTokenIncludingEof(t *testing.T) {
	var buf bytes.Buffer
	err := printTokens("x = 1\n", &buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Id(\"x\")")
	assert.Contains(t, out, "Eof")
}

func TestPrintTokensRecoversLexerErrorInsteadOfPanicking(t *testing.T) {
	var buf bytes.Buffer
	err := printTokens("if True:\n   x = 1\n", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad indent")
}
