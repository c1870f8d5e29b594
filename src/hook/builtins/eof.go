package builtins

import (
	"bytes"
	"context"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/sofmeright/hookwright/src/hook"
)

func init() {
	hook.Register(hook.Spec{
		ID:          "end-of-file-fixer",
		Name:        "Fix end of files",
		Description: "Ensures files end with exactly one newline.",
		Types:       []string{"text"},
		New:         func() hook.Hook { return &eofHook{} },
	})
}

type eofHook struct {
	opts eofOptions
}

type eofOptions struct {
	Fix bool `mapstructure:"fix"`
}

func (h *eofHook) ID() string { return "end-of-file-fixer" }

func (h *eofHook) Configure(opts map[string]any) error {
	h.opts = eofOptions{Fix: true}
	return mapstructure.Decode(opts, &h.opts)
}

func (h *eofHook) Check(ctx context.Context, file hook.File) ([]hook.Finding, error) {
	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	fixed, message := normalizeEOF(data)
	if fixed == nil {
		return nil, nil
	}

	finding := hook.Finding{
		File:    file.Path,
		Line:    bytes.Count(data, []byte("\n")) + 1,
		Hook:    h.ID(),
		Message: message,
		Fixed:   h.opts.Fix,
	}

	if h.opts.Fix {
		if err := writeBack(file.AbsPath, fixed); err != nil {
			return []hook.Finding{finding}, err
		}
	}
	return []hook.Finding{finding}, nil
}

// normalizeEOF returns the corrected content, or nil when the file
// already ends with a single newline. CRLF files keep their final \r\n.
func normalizeEOF(data []byte) ([]byte, string) {
	if data[len(data)-1] != '\n' {
		eol := []byte("\n")
		if bytes.Contains(data, []byte("\r\n")) {
			eol = []byte("\r\n")
		}
		return append(append([]byte{}, data...), eol...), "missing final newline"
	}

	trimmed := bytes.TrimRight(data, "\r\n")
	if len(trimmed) == 0 {
		// Whitespace-only file collapses to a single newline.
		if len(data) > 1 {
			return []byte("\n"), "extra blank lines at end of file"
		}
		return nil, ""
	}

	eol := []byte("\n")
	if bytes.HasPrefix(data[len(trimmed):], []byte("\r\n")) {
		eol = []byte("\r\n")
	}
	want := append(append([]byte{}, trimmed...), eol...)
	if bytes.Equal(want, data) {
		return nil, ""
	}
	return want, "extra blank lines at end of file"
}
