package config

import (
	"fmt"
	"regexp"
)

// FilePattern holds the pre-compiled include and exclude regular
// expressions of a file-pattern filter. Compiling once up front avoids
// repeated regex compilation while matching file sets.
type FilePattern struct {
	Include *regexp.Regexp
	Exclude *regexp.Regexp
}

// CompileFilePattern compiles a files/exclude regex pair. Empty strings
// compile to nil, meaning no constraint on that side.
func CompileFilePattern(files, exclude string) (*FilePattern, error) {
	fp := &FilePattern{}

	if files != "" {
		re, err := regexp.Compile(files)
		if err != nil {
			return nil, fmt.Errorf("invalid files pattern %q: %w", files, err)
		}
		fp.Include = re
	}

	if exclude != "" {
		re, err := regexp.Compile(exclude)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", exclude, err)
		}
		fp.Exclude = re
	}

	return fp, nil
}

// Match evaluates the pattern against a slash-separated relative path.
// Exclude is checked first; a nil include matches everything not excluded.
func (fp *FilePattern) Match(path string) bool {
	if fp == nil {
		return true
	}
	if fp.Exclude != nil && fp.Exclude.MatchString(path) {
		return false
	}
	if fp.Include == nil {
		return true
	}
	return fp.Include.MatchString(path)
}
