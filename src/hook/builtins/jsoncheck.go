package builtins

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sofmeright/hookwright/src/hook"
)

func init() {
	hook.Register(hook.Spec{
		ID:          "check-json",
		Name:        "Check JSON",
		Description: "Validates JSON syntax.",
		Types:       []string{"json"},
		New:         func() hook.Hook { return &jsonHook{} },
	})
}

type jsonHook struct{}

func (h *jsonHook) ID() string { return "check-json" }

func (h *jsonHook) Check(ctx context.Context, file hook.File) ([]hook.Finding, error) {
	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []hook.Finding{{
			File:    file.Path,
			Hook:    h.ID(),
			Message: "empty JSON document",
		}}, nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		finding := hook.Finding{
			File:    file.Path,
			Hook:    h.ID(),
			Message: fmt.Sprintf("JSON parse error: %v", err),
		}
		finding.Line, finding.Column = offsetPosition(data, jsonErrorOffset(err))
		return []hook.Finding{finding}, nil
	}
	return nil, nil
}

// jsonErrorOffset extracts the byte offset from a decode error, or 0.
func jsonErrorOffset(err error) int64 {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return syn.Offset
	}
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		return typ.Offset
	}
	return 0
}

// offsetPosition converts a byte offset to a 1-based line and column.
func offsetPosition(data []byte, offset int64) (line, col int) {
	if offset <= 0 || offset > int64(len(data)) {
		return 0, 0
	}
	head := data[:offset]
	line = bytes.Count(head, []byte("\n")) + 1
	if i := bytes.LastIndexByte(head, '\n'); i >= 0 {
		col = int(offset) - i
	} else {
		col = int(offset)
	}
	return line, col
}
