package builtins

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineEnding_AutoNormalizesToDominant(t *testing.T) {
	// Two CRLF lines, one LF: CRLF wins.
	f := tempFile(t, "mixed.txt", []byte("a\r\nb\r\nc\n"))
	h := configured(t, "mixed-line-ending", nil)

	findings, err := h.Check(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "mixed line endings")
	assert.True(t, findings[0].Fixed)

	assert.Equal(t, "a\r\nb\r\nc\r\n", readBack(t, f))
}

func TestLineEnding_ConsistentFileIsClean(t *testing.T) {
	for _, content := range []string{"a\nb\n", "a\r\nb\r\n", ""} {
		f := tempFile(t, "f.txt", []byte(content))
		h := configured(t, "mixed-line-ending", nil)

		findings, err := h.Check(context.Background(), f)
		require.NoError(t, err)
		assert.Empty(t, findings, "content %q", content)
	}
}

func TestLineEnding_ForceLF(t *testing.T) {
	f := tempFile(t, "dos.txt", []byte("a\r\nb\r\n"))
	h := configured(t, "mixed-line-ending", map[string]any{"fix": "lf"})

	findings, err := h.Check(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "a\nb\n", readBack(t, f))
}

func TestLineEnding_NoModeReportsOnly(t *testing.T) {
	content := "a\r\nb\n"
	f := tempFile(t, "mixed.txt", []byte(content))
	h := configured(t, "mixed-line-ending", map[string]any{"fix": "no"})

	findings, err := h.Check(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.False(t, findings[0].Fixed)
	assert.Equal(t, content, readBack(t, f))
}

func TestLineEnding_RejectsBadFixMode(t *testing.T) {
	h := &lineEndingHook{}
	err := h.Configure(map[string]any{"fix": "sometimes"})
	require.Error(t, err)
}
