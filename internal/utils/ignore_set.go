package utils

import "strings"

// IgnoreSet holds absolute path prefixes excluded from the tree and from file display.
// The zero value ignores nothing.
type IgnoreSet struct {
	paths []string
}

// NewIgnoreSet resolves each raw ignore path against workingDirectory.
// Blank entries are skipped and duplicates collapse to their first occurrence.
func NewIgnoreSet(workingDirectory string, rawPaths []string) IgnoreSet {
	resolvedPaths := make([]string, 0, len(rawPaths))
	for _, rawPath := range rawPaths {
		trimmedPath := strings.TrimSpace(rawPath)
		if trimmedPath == "" {
			continue
		}
		resolvedPaths = append(resolvedPaths, ResolvePath(trimmedPath, workingDirectory))
	}
	return IgnoreSet{paths: DeduplicatePatterns(resolvedPaths)}
}

// IsIgnored reports whether absolutePath equals or descends from any ignored path.
func (ignoreSet IgnoreSet) IsIgnored(absolutePath string) bool {
	for _, ignoredPath := range ignoreSet.paths {
		if IsWithinPath(absolutePath, ignoredPath) {
			return true
		}
	}
	return false
}

// Paths returns a copy of the resolved ignore prefixes.
func (ignoreSet IgnoreSet) Paths() []string {
	return append([]string(nil), ignoreSet.paths...)
}
