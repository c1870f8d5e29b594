package builtins

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEOF_NormalizesEndings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string // "" means no change expected
	}{
		{"missing newline", "no newline", "no newline\n"},
		{"single newline ok", "fine\n", ""},
		{"extra blank lines", "text\n\n\n", "text\n"},
		{"crlf missing newline", "a\r\nb", "a\r\nb\r\n"},
		{"crlf extra blanks", "a\r\n\r\n\r\n", "a\r\n"},
		{"whitespace only", "\n\n\n", "\n"},
		{"empty file", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tempFile(t, "f.txt", []byte(tt.content))
			h := configured(t, "end-of-file-fixer", nil)

			findings, err := h.Check(context.Background(), f)
			require.NoError(t, err)

			if tt.want == "" {
				assert.Empty(t, findings)
				assert.Equal(t, tt.content, readBack(t, f))
				return
			}

			require.Len(t, findings, 1)
			assert.True(t, findings[0].Fixed)
			assert.Equal(t, tt.want, readBack(t, f))
		})
	}
}

func TestEOF_FixDisabled(t *testing.T) {
	content := "no newline"
	f := tempFile(t, "f.txt", []byte(content))
	h := configured(t, "end-of-file-fixer", map[string]any{"fix": false})

	findings, err := h.Check(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.False(t, findings[0].Fixed)
	assert.Equal(t, content, readBack(t, f))
}
