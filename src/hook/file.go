package hook

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sofmeright/hookwright/src/config"
)

// File is passed to each hook for inspection.
type File struct {
	Path    string // relative path from repo root, slash-separated
	AbsPath string // absolute path on disk
	Size    int64
}

// Collect walks rootDir and returns a File for every regular file that
// passes the document-level files/exclude pattern. Hidden directories
// (including .git) are skipped.
func Collect(rootDir string, topLevel *config.FilePattern) ([]File, error) {
	var files []File

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			base := filepath.Base(rel)
			if strings.HasPrefix(base, ".") && base != "." {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if !topLevel.Match(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		files = append(files, File{
			Path:    rel,
			AbsPath: path,
			Size:    info.Size(),
		})
		return nil
	})

	return files, err
}

// FromPaths builds Files from known relative paths (e.g. git's staged
// set). Paths that no longer exist on disk are dropped — a staged
// deletion has nothing to check. The document-level pattern still applies.
func FromPaths(rootDir string, paths []string, topLevel *config.FilePattern) []File {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		rel := filepath.ToSlash(p)
		if !topLevel.Match(rel) {
			continue
		}
		abs := filepath.Join(rootDir, filepath.FromSlash(rel))
		info, err := os.Lstat(abs)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, File{Path: rel, AbsPath: abs, Size: info.Size()})
	}
	return files
}
