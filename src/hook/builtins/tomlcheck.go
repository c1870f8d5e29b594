package builtins

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/sofmeright/hookwright/src/hook"
)

func init() {
	hook.Register(hook.Spec{
		ID:          "check-toml",
		Name:        "Check TOML",
		Description: "Validates TOML syntax.",
		Types:       []string{"toml"},
		New:         func() hook.Hook { return &tomlHook{} },
	})
}

type tomlHook struct{}

func (h *tomlHook) ID() string { return "check-toml" }

func (h *tomlHook) Check(ctx context.Context, file hook.File) ([]hook.Finding, error) {
	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, err
	}

	var doc any
	err = toml.Unmarshal(data, &doc)
	if err == nil {
		return nil, nil
	}

	finding := hook.Finding{
		File: file.Path,
		Hook: h.ID(),
	}

	var de *toml.DecodeError
	if errors.As(err, &de) {
		row, col := de.Position()
		finding.Line = row
		finding.Column = col
		finding.Message = fmt.Sprintf("TOML parse error: %s", de.Error())
	} else {
		finding.Message = fmt.Sprintf("TOML parse error: %v", err)
	}

	return []hook.Finding{finding}, nil
}
