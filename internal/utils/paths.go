package utils

import (
	"path/filepath"
	"strings"
)

// ResolvePath anchors inputPath at workingDirectory and returns a cleaned absolute path.
// Absolute inputs are cleaned as-is. No filesystem access is performed.
func ResolvePath(inputPath string, workingDirectory string) string {
	if filepath.IsAbs(inputPath) {
		return filepath.Clean(inputPath)
	}
	return filepath.Join(workingDirectory, inputPath)
}

// IsWithinPath reports whether candidatePath equals parentPath or lies beneath it.
// Matching respects path segments, so "/root/folder1" does not contain "/root/folder10".
func IsWithinPath(candidatePath string, parentPath string) bool {
	cleanCandidate := filepath.Clean(candidatePath)
	cleanParent := filepath.Clean(parentPath)
	if cleanCandidate == cleanParent {
		return true
	}
	parentPrefix := cleanParent
	if !strings.HasSuffix(parentPrefix, string(filepath.Separator)) {
		parentPrefix += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanCandidate, parentPrefix)
}
