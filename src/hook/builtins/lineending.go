package builtins

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/sofmeright/hookwright/src/hook"
)

func init() {
	hook.Register(hook.Spec{
		ID:          "mixed-line-ending",
		Name:        "Mixed line ending",
		Description: "Detects mixed CRLF/LF line endings and normalizes them.",
		Types:       []string{"text"},
		New:         func() hook.Hook { return &lineEndingHook{} },
	})
}

type lineEndingHook struct {
	opts lineEndingOptions
}

type lineEndingOptions struct {
	// Fix: "auto" normalizes to the file's dominant ending, "lf"/"crlf"
	// force one, "no" only reports.
	Fix string `mapstructure:"fix"`
}

func (h *lineEndingHook) ID() string { return "mixed-line-ending" }

func (h *lineEndingHook) Configure(opts map[string]any) error {
	h.opts = lineEndingOptions{Fix: "auto"}
	if err := mapstructure.Decode(opts, &h.opts); err != nil {
		return err
	}
	switch h.opts.Fix {
	case "auto", "lf", "crlf", "no":
		return nil
	}
	return fmt.Errorf("mixed-line-ending: invalid fix mode %q (auto, lf, crlf, no)", h.opts.Fix)
}

func (h *lineEndingHook) Check(ctx context.Context, file hook.File) ([]hook.Finding, error) {
	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	crlf := bytes.Count(data, []byte("\r\n"))
	lf := bytes.Count(data, []byte("\n")) - crlf

	target := ""
	message := ""
	switch h.opts.Fix {
	case "lf":
		if crlf > 0 {
			target, message = "\n", "CRLF line endings (LF forced)"
		}
	case "crlf":
		if lf > 0 {
			target, message = "\r\n", "LF line endings (CRLF forced)"
		}
	default: // auto or no: only mixed files are a problem
		if crlf > 0 && lf > 0 {
			message = "mixed line endings (CRLF and LF)"
			if crlf >= lf {
				target = "\r\n"
			} else {
				target = "\n"
			}
		}
	}

	if message == "" {
		return nil, nil
	}

	fix := h.opts.Fix != "no" && target != ""
	finding := hook.Finding{
		File:    file.Path,
		Line:    1,
		Hook:    h.ID(),
		Message: message,
		Fixed:   fix,
	}

	if fix {
		normalized := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
		if target == "\r\n" {
			normalized = bytes.ReplaceAll(normalized, []byte("\n"), []byte("\r\n"))
		}
		if err := writeBack(file.AbsPath, normalized); err != nil {
			return []hook.Finding{finding}, err
		}
	}

	return []hook.Finding{finding}, nil
}
