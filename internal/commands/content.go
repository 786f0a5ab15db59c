package commands

import (
	"os"
	"strings"

	"github.com/temirov/ctxdump/internal/types"
	"github.com/temirov/ctxdump/internal/utils"
)

const lineTerminator = "\n"

// ReadContent reads the file at path as text and slices it to lineRange.
//
// #nosec G304
func ReadContent(path string, lineRange types.LineRange) (string, error) {
	fileBytes, readError := os.ReadFile(path)
	if readError != nil {
		return "", readError
	}
	if validationError := utils.ValidateText(fileBytes); validationError != nil {
		return "", validationError
	}
	return SliceLines(string(fileBytes), lineRange), nil
}

// SliceLines returns the 1-indexed inclusive line window of content.
// Bounds are clamped: a missing start means line 1, a missing or oversized end means the last line,
// and a start beyond the last line or after the end yields an empty string.
// Line terminators are preserved, so a full-range slice equals content.
func SliceLines(content string, lineRange types.LineRange) string {
	if !lineRange.IsSet() {
		return content
	}
	lines := strings.SplitAfter(content, lineTerminator)
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	totalLines := len(lines)

	startLine := lineRange.EffectiveStart()
	endLine := lineRange.End
	if endLine < 1 || endLine > totalLines {
		endLine = totalLines
	}
	if startLine > totalLines || startLine > endLine {
		return ""
	}
	return strings.Join(lines[startLine-1:endLine], "")
}
