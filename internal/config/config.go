// Package config loads application defaults and ignore-path lists.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/ctxdump/internal/utils"
)

const (
	// IgnoreFileName is the per-project file listing paths to ignore, one per line.
	IgnoreFileName = ".ctxdumpignore"
	commentPrefix  = "#"
)

// LoadIgnorePathsFile reads ignore paths from ignoreFilePath.
// Blank lines and lines starting with "#" are skipped. A missing file yields no paths.
//
// #nosec G304
func LoadIgnorePathsFile(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var ignorePaths []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		ignorePaths = append(ignorePaths, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePaths, nil
}

// LoadCombinedIgnorePaths aggregates configured ignore paths, the project ignore file and explicit paths.
// Order is configured, file, explicit; duplicates and blank entries are dropped.
func LoadCombinedIgnorePaths(absoluteDirectoryPath string, configuredPaths []string, explicitPaths []string, useIgnoreFile bool) ([]string, error) {
	combinedPaths := append([]string{}, configuredPaths...)

	if useIgnoreFile {
		ignoreFilePath := filepath.Join(absoluteDirectoryPath, IgnoreFileName)
		filePaths, loadError := LoadIgnorePathsFile(ignoreFilePath)
		if loadError != nil {
			return nil, fmt.Errorf("loading %s from %s: %w", IgnoreFileName, absoluteDirectoryPath, loadError)
		}
		combinedPaths = append(combinedPaths, filePaths...)
	}
	combinedPaths = append(combinedPaths, explicitPaths...)

	nonBlankPaths := make([]string, 0, len(combinedPaths))
	for _, ignorePath := range combinedPaths {
		trimmedPath := strings.TrimSpace(ignorePath)
		if trimmedPath == "" {
			continue
		}
		nonBlankPaths = append(nonBlankPaths, trimmedPath)
	}
	return utils.DeduplicatePatterns(nonBlankPaths), nil
}
