package builtins

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sofmeright/hookwright/src/hook"
)

// tempFile writes content to a fresh temp dir and returns the hook.File
// pointing at it. The logical path is just the file name.
func tempFile(t *testing.T, name string, content []byte) hook.File {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	return hook.File{Path: name, AbsPath: path, Size: info.Size()}
}

func readBack(t *testing.T, f hook.File) string {
	t.Helper()
	data, err := os.ReadFile(f.AbsPath)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	return string(data)
}

// configured builds a registered hook and applies its options, failing
// the test on either step.
func configured(t *testing.T, id string, opts map[string]any) hook.Hook {
	t.Helper()

	h, err := hook.New(id)
	if err != nil {
		t.Fatalf("new %s: %v", id, err)
	}
	if c, ok := h.(hook.Configurable); ok {
		if err := c.Configure(opts); err != nil {
			t.Fatalf("configure %s: %v", id, err)
		}
	}
	return h
}
