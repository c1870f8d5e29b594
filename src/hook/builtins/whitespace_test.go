package builtins

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhitespace_TrimsAndReportsLines(t *testing.T) {
	f := tempFile(t, "code.go", []byte("package p  \n\nvar x = 1\t\nvar y = 2\n"))
	h := configured(t, "trailing-whitespace", nil)

	findings, err := h.Check(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, findings, 2)

	assert.Equal(t, 1, findings[0].Line)
	assert.Equal(t, 3, findings[1].Line)
	assert.True(t, findings[0].Fixed)

	assert.Equal(t, "package p\n\nvar x = 1\nvar y = 2\n", readBack(t, f))
}

func TestWhitespace_CleanFileUntouched(t *testing.T) {
	content := "package p\n\nvar x = 1\n"
	f := tempFile(t, "clean.go", []byte(content))
	h := configured(t, "trailing-whitespace", nil)

	findings, err := h.Check(context.Background(), f)
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Equal(t, content, readBack(t, f))
}

func TestWhitespace_MarkdownHardLinebreaks(t *testing.T) {
	// Two trailing spaces are a Markdown hard linebreak and stay; three
	// collapse to two; one goes away entirely.
	f := tempFile(t, "doc.md", []byte("keep  \ncollapse   \nstrip \n"))
	h := configured(t, "trailing-whitespace", nil)

	findings, err := h.Check(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, findings, 2)
	assert.Equal(t, 2, findings[0].Line)
	assert.Equal(t, 3, findings[1].Line)

	assert.Equal(t, "keep  \ncollapse  \nstrip\n", readBack(t, f))
}

func TestWhitespace_FixDisabledReportsOnly(t *testing.T) {
	content := "trailing \n"
	f := tempFile(t, "report.txt", []byte(content))
	h := configured(t, "trailing-whitespace", map[string]any{"fix": false})

	findings, err := h.Check(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.False(t, findings[0].Fixed)
	assert.Equal(t, content, readBack(t, f))
}

func TestWhitespace_PreservesCRLF(t *testing.T) {
	f := tempFile(t, "dos.txt", []byte("line \r\nnext\r\n"))
	h := configured(t, "trailing-whitespace", nil)

	findings, err := h.Check(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "line\r\nnext\r\n", readBack(t, f))
}
