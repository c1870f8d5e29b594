package builtins

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/sofmeright/hookwright/src/hook"
)

func init() {
	hook.Register(hook.Spec{
		ID:          "strip-notebook-output",
		Name:        "Strip notebook output",
		Description: "Removes execution outputs and counts from Jupyter notebooks.",
		Types:       []string{"jupyter"},
		New:         func() hook.Hook { return &notebookHook{} },
	})
}

type notebookHook struct {
	opts notebookOptions
}

type notebookOptions struct {
	Fix bool `mapstructure:"fix"`
	// KeepCount preserves execution_count values while still dropping
	// outputs.
	KeepCount bool `mapstructure:"keep_count"`
}

func (h *notebookHook) ID() string { return "strip-notebook-output" }

func (h *notebookHook) Configure(opts map[string]any) error {
	h.opts = notebookOptions{Fix: true}
	return mapstructure.Decode(opts, &h.opts)
}

func (h *notebookHook) Check(ctx context.Context, file hook.File) ([]hook.Finding, error) {
	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, err
	}

	var nb map[string]any
	if err := json.Unmarshal(data, &nb); err != nil {
		return []hook.Finding{{
			File:    file.Path,
			Hook:    h.ID(),
			Message: fmt.Sprintf("not a valid notebook: %v", err),
		}}, nil
	}

	cells, ok := nb["cells"].([]any)
	if !ok {
		return nil, nil // nbformat <4 or not a notebook; nothing to strip
	}

	stripped := 0
	for _, c := range cells {
		cell, ok := c.(map[string]any)
		if !ok || cell["cell_type"] != "code" {
			continue
		}

		changed := false
		if outputs, ok := cell["outputs"].([]any); ok && len(outputs) > 0 {
			cell["outputs"] = []any{}
			changed = true
		}
		if !h.opts.KeepCount && cell["execution_count"] != nil {
			cell["execution_count"] = nil
			changed = true
		}
		if changed {
			stripped++
		}
	}

	if stripped == 0 {
		return nil, nil
	}

	finding := hook.Finding{
		File:    file.Path,
		Hook:    h.ID(),
		Message: fmt.Sprintf("notebook carries execution output (%d cells)", stripped),
		Fixed:   h.opts.Fix,
	}

	if h.opts.Fix {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", " ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(nb); err != nil {
			return []hook.Finding{finding}, err
		}
		if err := writeBack(file.AbsPath, buf.Bytes()); err != nil {
			return []hook.Finding{finding}, err
		}
	}

	return []hook.Finding{finding}, nil
}
