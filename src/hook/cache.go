package hook

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	cacheDir      = ".hookwright/cache/results"
	engineVersion = "0.1.0"
)

// Cache provides content-addressed hook result caching. A file that
// hasn't changed since a hook last passed over it doesn't get re-checked.
type Cache struct {
	RootDir string
	Enabled bool
}

// cacheEntry stores cached findings for a file+hook combination.
type cacheEntry struct {
	Findings []Finding `json:"findings"`
}

// Key computes a cache key from file content, hook id, and options.
func (c *Cache) Key(content []byte, hookID string, optionsJSON string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte(hookID))
	h.Write([]byte(optionsJSON))
	h.Write([]byte(engineVersion))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves cached findings. Returns nil, false on cache miss.
func (c *Cache) Get(key string) ([]Finding, bool) {
	if !c.Enabled {
		return nil, false
	}

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	return entry.Findings, true
}

// Put stores findings in the cache. Empty results are cached too — a
// clean pass is the common case worth remembering.
func (c *Cache) Put(key string, findings []Finding) error {
	if !c.Enabled {
		return nil
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	data, err := json.Marshal(cacheEntry{Findings: findings})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Clear removes the entire cache directory.
func (c *Cache) Clear() error {
	return os.RemoveAll(filepath.Join(c.RootDir, cacheDir))
}

// path returns the filesystem path for a cache key.
// Uses a 2-char prefix subdirectory to avoid huge flat directories.
func (c *Cache) path(key string) string {
	return filepath.Join(c.RootDir, cacheDir, key[:2], key+".json")
}

// EnsureGitignore adds .hookwright/ to .gitignore if not already present.
func EnsureGitignore(rootDir string) {
	gitignorePath := filepath.Join(rootDir, ".gitignore")
	entry := ".hookwright/"

	data, err := os.ReadFile(gitignorePath)
	if err == nil {
		for _, line := range splitLines(data) {
			if line == entry {
				return
			}
		}
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return // best effort
	}
	defer f.Close()

	if len(data) > 0 && data[len(data)-1] != '\n' {
		f.WriteString("\n")
	}
	f.WriteString(entry + "\n")
}

func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			line := string(data[start:i])
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			lines = append(lines, line)
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}
