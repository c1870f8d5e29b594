// Package identify classifies files into type tags used by hook file
// filters (types / exclude_types in the configuration).
package identify

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
)

// Tags every classifier can produce. Filters referencing a tag outside
// this set are rejected during config validation.
var knownTags = map[string]bool{
	"file":       true,
	"text":       true,
	"binary":     true,
	"executable": true,
	"symlink":    true,
	"yaml":       true,
	"json":       true,
	"toml":       true,
	"ini":        true,
	"xml":        true,
	"markdown":   true,
	"rst":        true,
	"python":     true,
	"go":         true,
	"rust":       true,
	"javascript": true,
	"typescript": true,
	"shell":      true,
	"dockerfile": true,
	"makefile":   true,
	"jupyter":    true,
	"html":       true,
	"css":        true,
	"sql":        true,
	"terraform":  true,
	"proto":      true,
}

// extTags maps file extensions (lowercase, with dot) to type tags.
var extTags = map[string][]string{
	".yml":      {"yaml"},
	".yaml":     {"yaml"},
	".json":     {"json"},
	".geojson":  {"json"},
	".json5":    {"json"},
	".toml":     {"toml"},
	".ini":      {"ini"},
	".cfg":      {"ini"},
	".xml":      {"xml"},
	".md":       {"markdown"},
	".markdown": {"markdown"},
	".rst":      {"rst"},
	".py":       {"python"},
	".pyi":      {"python"},
	".go":       {"go"},
	".rs":       {"rust"},
	".js":       {"javascript"},
	".mjs":      {"javascript"},
	".cjs":      {"javascript"},
	".ts":       {"typescript"},
	".tsx":      {"typescript"},
	".sh":       {"shell"},
	".bash":     {"shell"},
	".zsh":      {"shell"},
	".ipynb":    {"jupyter", "json"},
	".html":     {"html"},
	".htm":      {"html"},
	".css":      {"css"},
	".sql":      {"sql"},
	".tf":       {"terraform"},
	".tfvars":   {"terraform"},
	".proto":    {"proto"},
}

// nameTags maps exact basenames to tags for files without a telling extension.
var nameTags = map[string][]string{
	"Dockerfile":              {"dockerfile"},
	"Containerfile":           {"dockerfile"},
	"Makefile":                {"makefile"},
	"GNUmakefile":             {"makefile"},
	".pre-commit-config.yaml": {"yaml"},
}

// Known reports whether tag is a recognized type tag.
func Known(tag string) bool { return knownTags[tag] }

// KnownTags returns all recognized tags, sorted.
func KnownTags() []string {
	tags := make([]string, 0, len(knownTags))
	for t := range knownTags {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Tags classifies a file by path and on-disk attributes. The returned set
// always contains "file" plus exactly one of "text" or "binary" for
// regular files. Classification never fails: unreadable files fall back
// to path-based tags only.
func Tags(path, absPath string) []string {
	set := map[string]bool{"file": true}

	info, err := os.Lstat(absPath)
	if err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			// Symlinks get no content tags.
			return []string{"file", "symlink"}
		}
		if info.Mode()&0o111 != 0 {
			set["executable"] = true
		}
	}

	for _, t := range pathTags(path) {
		set[t] = true
	}

	if isBinary(absPath) {
		set["binary"] = true
	} else {
		set["text"] = true
	}

	// Extensionless executables with a shebang are likely scripts.
	if set["executable"] && !set["binary"] && filepath.Ext(path) == "" {
		if lang := shebangTag(absPath); lang != "" {
			set[lang] = true
		}
	}

	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// pathTags returns tags derivable from the path alone.
func pathTags(path string) []string {
	base := filepath.Base(path)
	if tags, ok := nameTags[base]; ok {
		return tags
	}
	// Dockerfile.alpine, Dockerfile.debug etc.
	if strings.HasPrefix(base, "Dockerfile.") {
		return []string{"dockerfile"}
	}
	ext := strings.ToLower(filepath.Ext(base))
	if tags, ok := extTags[ext]; ok {
		return tags
	}
	return nil
}

// isBinary sniffs the first KiB: a recognized magic number means a known
// binary format, otherwise a NUL byte decides, the same heuristic git
// uses. Some formats (GIF, early PDF) start with pure ASCII and would
// slip past the NUL check alone.
func isBinary(absPath string) bool {
	f, err := os.Open(absPath)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 1024)
	n, err := f.Read(buf)
	if n <= 0 || (err != nil && n == 0) {
		return false
	}
	if kind, err := filetype.Match(buf[:n]); err == nil && kind != filetype.Unknown {
		return true
	}
	return bytes.IndexByte(buf[:n], 0) >= 0
}

// shebangTag maps a script's interpreter line to a language tag.
func shebangTag(absPath string) string {
	f, err := os.Open(absPath)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, 128)
	n, _ := f.Read(buf)
	line := string(buf[:n])
	if !strings.HasPrefix(line, "#!") {
		return ""
	}
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	switch {
	case strings.Contains(line, "python"):
		return "python"
	case strings.Contains(line, "bash"), strings.Contains(line, "/sh"),
		strings.Contains(line, "env sh"), strings.Contains(line, "zsh"):
		return "shell"
	case strings.Contains(line, "node"):
		return "javascript"
	}
	return ""
}
