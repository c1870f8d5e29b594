package builtins

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/sofmeright/hookwright/src/hook"
)

func init() {
	hook.Register(hook.Spec{
		ID:          "trailing-whitespace",
		Name:        "Trim trailing whitespace",
		Description: "Trims trailing whitespace from line ends, preserving Markdown hard linebreaks.",
		Types:       []string{"text"},
		New:         func() hook.Hook { return &whitespaceHook{} },
	})
}

type whitespaceHook struct {
	opts whitespaceOptions
}

type whitespaceOptions struct {
	Fix                  bool     `mapstructure:"fix"`
	MarkdownLinebreakExt []string `mapstructure:"markdown_linebreak_ext"`
}

func (h *whitespaceHook) ID() string { return "trailing-whitespace" }

func (h *whitespaceHook) Configure(opts map[string]any) error {
	h.opts = whitespaceOptions{
		Fix:                  true,
		MarkdownLinebreakExt: []string{".md", ".markdown"},
	}
	return mapstructure.Decode(opts, &h.opts)
}

func (h *whitespaceHook) Check(ctx context.Context, file hook.File) ([]hook.Finding, error) {
	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	markdown := h.isMarkdown(file.Path)
	var findings []hook.Finding
	changed := false

	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		// Last element of the split is the tail after the final newline.
		if i == len(lines)-1 && len(line) == 0 {
			continue
		}

		body := bytes.TrimSuffix(line, []byte("\r"))
		trimmed := bytes.TrimRight(body, " \t")
		if len(trimmed) == len(body) {
			continue
		}

		// Markdown hard linebreaks: two or more trailing spaces collapse
		// to exactly two rather than nothing.
		if markdown && bytes.HasSuffix(body, []byte("  ")) && len(trimmed) > 0 {
			kept := append(append([]byte{}, trimmed...), ' ', ' ')
			if bytes.Equal(kept, body) {
				continue // already exactly two spaces
			}
			body = kept
		} else {
			body = trimmed
		}

		findings = append(findings, hook.Finding{
			File:    file.Path,
			Line:    i + 1,
			Hook:    h.ID(),
			Message: "trailing whitespace",
			Fixed:   h.opts.Fix,
		})

		if h.opts.Fix {
			if bytes.HasSuffix(line, []byte("\r")) {
				body = append(body, '\r')
			}
			lines[i] = body
			changed = true
		}
	}

	if changed {
		if err := writeBack(file.AbsPath, bytes.Join(lines, []byte("\n"))); err != nil {
			return findings, err
		}
	}

	return findings, nil
}

func (h *whitespaceHook) isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range h.opts.MarkdownLinebreakExt {
		if ext == e {
			return true
		}
	}
	return false
}

// writeBack rewrites a file in place, preserving its mode.
func writeBack(absPath string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(absPath, data, mode)
}
