// Package output renders dump results as raw text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/temirov/ctxdump/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	newline                = "\n"
	codeFence              = "```"
	currentDirectoryPrefix = "./"
	fromLineFormat         = " from line %d"
	toLineFormat           = " to line %d"
	readErrorFormat        = "Error reading file '%s': %s\n"
	warningFormat          = "Warning: '%s' %s."
	invalidFormatMessage   = "Invalid format value '%s'"

	// NoContentWarning is printed when the tree is suppressed and no file was requested.
	NoContentWarning = "Warning: No content to display."
)

// RenderRaw returns the plain text rendering of a dump result.
// Every file block and warning is preceded by a blank line.
func RenderRaw(result types.DumpResult) string {
	var builder strings.Builder
	if !result.SuppressTree && result.Tree != nil {
		builder.WriteString(strings.Join(RenderTreeLines(result.Tree), newline))
		builder.WriteString(newline)
	}
	if result.SuppressTree && len(result.Files) == 0 {
		builder.WriteString(NoContentWarning)
		builder.WriteString(newline)
		return builder.String()
	}
	for _, outcome := range result.Files {
		builder.WriteString(newline)
		switch outcome.Kind {
		case types.OutcomeShown:
			builder.WriteString(FormatContentBlock(outcome))
		default:
			builder.WriteString(FormatWarning(outcome))
			builder.WriteString(newline)
		}
	}
	return builder.String()
}

// jsonDocument is the JSON rendering of a dump result.
type jsonDocument struct {
	WorkingDirectory string           `json:"workingDirectory"`
	Tree             *types.TreeNode  `json:"tree,omitempty"`
	IgnorePaths      []string         `json:"ignorePaths,omitempty"`
	Files            []jsonFileResult `json:"files"`
	Warnings         []string         `json:"warnings,omitempty"`
}

type jsonFileResult struct {
	Path      string           `json:"path"`
	Status    string           `json:"status"`
	Range     *types.LineRange `json:"range,omitempty"`
	Content   *string          `json:"content,omitempty"`
	ReadError string           `json:"readError,omitempty"`
	Warning   string           `json:"warning,omitempty"`
}

// RenderJSON marshals a dump result as an indented JSON document.
func RenderJSON(result types.DumpResult) (string, error) {
	document := jsonDocument{
		WorkingDirectory: result.WorkingDirectory,
		IgnorePaths:      result.IgnorePaths,
		Files:            make([]jsonFileResult, 0, len(result.Files)),
	}
	if !result.SuppressTree {
		document.Tree = result.Tree
	}
	if result.SuppressTree && len(result.Files) == 0 {
		document.Warnings = append(document.Warnings, NoContentWarning)
	}
	for _, outcome := range result.Files {
		fileResult := jsonFileResult{
			Path:   outcome.RelativePath,
			Status: string(outcome.Kind),
		}
		if outcome.Range.IsSet() {
			lineRange := outcome.Range
			fileResult.Range = &lineRange
		}
		switch outcome.Kind {
		case types.OutcomeShown:
			if outcome.ReadError != "" {
				fileResult.ReadError = outcome.ReadError
			} else {
				content := outcome.Content
				fileResult.Content = &content
			}
		default:
			fileResult.Warning = FormatWarning(outcome)
		}
		document.Files = append(document.Files, fileResult)
	}
	encoded, jsonEncodeError := json.MarshalIndent(document, indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", fmt.Errorf("encoding json output: %w", jsonEncodeError)
	}
	return string(encoded) + newline, nil
}

// Render dispatches to the renderer for format.
func Render(format string, result types.DumpResult) (string, error) {
	switch format {
	case types.FormatRaw, "":
		return RenderRaw(result), nil
	case types.FormatJSON:
		return RenderJSON(result)
	default:
		return "", fmt.Errorf(invalidFormatMessage, format)
	}
}
