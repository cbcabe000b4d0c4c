package watch

import (
	"path/filepath"
)

// editorLeftovers are files editors write next to the real one while saving.
var editorLeftovers = []string{"*.swp", "*.swx", "*~", ".#*", "*.tmp"}

// PatternFilter decides which paths in a watched directory are relevant.
type PatternFilter struct {
	Include []string
	Exclude []string
}

// NewPatternFilter creates a filter. A nil exclude list skips editor
// swap and backup files.
func NewPatternFilter(include, exclude []string) *PatternFilter {
	if exclude == nil {
		exclude = editorLeftovers
	}
	return &PatternFilter{Include: include, Exclude: exclude}
}

// Matches reports whether path passes the filter. Patterns are tried
// against both the base name and the full path. Excludes win; an empty
// include list admits everything else.
func (f *PatternFilter) Matches(path string) bool {
	base := filepath.Base(path)
	match := func(pattern string) bool {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		ok, _ := filepath.Match(pattern, path)
		return ok
	}

	for _, pattern := range f.Exclude {
		if match(pattern) {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, pattern := range f.Include {
		if match(pattern) {
			return true
		}
	}
	return false
}
