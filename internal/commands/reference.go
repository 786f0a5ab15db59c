package commands

import (
	"strconv"
	"strings"

	"github.com/temirov/ctxdump/internal/types"
)

const (
	rangeSeparator      = ":"
	rangeBoundSeparator = "-"
)

// ParseFileReference splits an optional line range from a raw reference.
// Accepted suffixes are ":S-E", ":S", ":S-" and ":-E" with decimal bounds.
// Anything else, including a bare trailing colon, is treated as part of the path.
func ParseFileReference(rawReference string) types.FileReference {
	reference := types.FileReference{Raw: rawReference, Path: rawReference}

	separatorIndex := strings.LastIndex(rawReference, rangeSeparator)
	if separatorIndex <= 0 {
		return reference
	}
	pathPart := rawReference[:separatorIndex]
	rangePart := rawReference[separatorIndex+len(rangeSeparator):]

	startText, endText, hasEnd := strings.Cut(rangePart, rangeBoundSeparator)
	if startText == "" && endText == "" {
		return reference
	}
	startLine, startOK := parseLineNumber(startText)
	if !startOK {
		return reference
	}
	endLine := 0
	if hasEnd {
		parsedEnd, endOK := parseLineNumber(endText)
		if !endOK {
			return reference
		}
		endLine = parsedEnd
	}

	reference.Path = pathPart
	reference.Range = types.LineRange{Start: startLine, End: endLine}
	return reference
}

// parseLineNumber accepts an empty string as an absent bound.
func parseLineNumber(text string) (int, bool) {
	if text == "" {
		return 0, true
	}
	for _, character := range text {
		if character < '0' || character > '9' {
			return 0, false
		}
	}
	value, parseError := strconv.Atoi(text)
	if parseError != nil {
		return 0, false
	}
	return value, true
}
