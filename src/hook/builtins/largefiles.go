package builtins

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/sofmeright/hookwright/src/hook"
)

const defaultMaxKB = 500

func init() {
	hook.Register(hook.Spec{
		ID:          "check-added-large-files",
		Name:        "Check for added large files",
		Description: "Prevents oversized files from being committed.",
		New:         func() hook.Hook { return &largeFilesHook{} },
	})
}

type largeFilesHook struct {
	opts largeFilesOptions
}

type largeFilesOptions struct {
	MaxKB int64 `mapstructure:"maxkb"`
}

func (h *largeFilesHook) ID() string { return "check-added-large-files" }

func (h *largeFilesHook) Configure(opts map[string]any) error {
	h.opts = largeFilesOptions{MaxKB: defaultMaxKB}
	if err := mapstructure.Decode(opts, &h.opts); err != nil {
		return err
	}
	if h.opts.MaxKB <= 0 {
		return fmt.Errorf("check-added-large-files: maxkb must be positive, got %d", h.opts.MaxKB)
	}
	return nil
}

func (h *largeFilesHook) Check(ctx context.Context, file hook.File) ([]hook.Finding, error) {
	max := h.opts.MaxKB * 1024
	if file.Size <= max {
		return nil, nil
	}

	return []hook.Finding{{
		File:    file.Path,
		Hook:    h.ID(),
		Message: fmt.Sprintf("file size %s exceeds threshold %s", humanSize(file.Size), humanSize(max)),
	}}, nil
}

func humanSize(b int64) string {
	switch {
	case b >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(b)/(1024*1024))
	case b >= 1024:
		return fmt.Sprintf("%.1f KB", float64(b)/1024)
	default:
		return fmt.Sprintf("%d B", b)
	}
}
