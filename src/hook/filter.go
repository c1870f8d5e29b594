package hook

import (
	"github.com/sofmeright/hookwright/src/config"
	"github.com/sofmeright/hookwright/src/identify"
)

// Filter is a hook's compiled file selector: the files/exclude regex
// pair plus type tag constraints.
type Filter struct {
	Pattern      *config.FilePattern
	Types        []string
	ExcludeTypes []string
}

// NewFilter compiles a filter from hook configuration fields.
func NewFilter(files, exclude string, types, excludeTypes []string) (*Filter, error) {
	pattern, err := config.CompileFilePattern(files, exclude)
	if err != nil {
		return nil, err
	}
	return &Filter{
		Pattern:      pattern,
		Types:        types,
		ExcludeTypes: excludeTypes,
	}, nil
}

// Match reports whether the file is selected by this filter.
func (f *Filter) Match(file File) bool {
	if f == nil {
		return true
	}
	if !f.Pattern.Match(file.Path) {
		return false
	}
	if len(f.Types) == 0 && len(f.ExcludeTypes) == 0 {
		return true
	}

	tags := identify.Tags(file.Path, file.AbsPath)
	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[t] = true
	}

	for _, t := range f.ExcludeTypes {
		if tagSet[t] {
			return false
		}
	}
	for _, t := range f.Types {
		if !tagSet[t] {
			return false
		}
	}
	return true
}

// Select returns the subset of files matching the filter.
func (f *Filter) Select(files []File) []File {
	if f == nil {
		return files
	}
	var out []File
	for _, file := range files {
		if f.Match(file) {
			out = append(out, file)
		}
	}
	return out
}
