// Package types defines every cross‑package data structure used by the ctxdump CLI.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatRaw  = "raw"
	FormatJSON = "json"
)

// TreeNode is a file or directory discovered under the working directory.
// Directory children are stored in sorted-name order at build time.
type TreeNode struct {
	Path     string      `json:"path"`
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Children []*TreeNode `json:"children,omitempty"`
}

// IsDirectory reports whether the node is a directory entry.
func (node *TreeNode) IsDirectory() bool {
	return node != nil && node.Type == NodeTypeDirectory
}

// LineRange is an optional 1-indexed inclusive line window.
// A zero bound means the bound was not requested.
type LineRange struct {
	Start int `json:"start,omitempty"`
	End   int `json:"end,omitempty"`
}

// IsSet reports whether any bound was requested.
func (lineRange LineRange) IsSet() bool {
	return lineRange.Start > 0 || lineRange.End > 0
}

// EffectiveStart returns the requested start, treating a missing start as line 1.
func (lineRange LineRange) EffectiveStart() int {
	if lineRange.Start < 1 {
		return 1
	}
	return lineRange.Start
}

// FileReference is a single file requested for display.
type FileReference struct {
	Raw   string
	Path  string
	Range LineRange
}

// OutcomeKind distinguishes displayed files from rejected ones.
type OutcomeKind string

const (
	OutcomeShown  OutcomeKind = "shown"
	OutcomeWarned OutcomeKind = "warned"
)

// DisplayOutcome is the result of evaluating one FileReference.
// Shown outcomes carry Content and ReadError; warned outcomes carry Reason.
type DisplayOutcome struct {
	Kind         OutcomeKind
	AbsolutePath string
	RelativePath string
	Range        LineRange
	Content      string
	ReadError    string
	Reason       string
}

// DumpRequest is everything the CLI collaborator supplies for one run.
type DumpRequest struct {
	WorkingDirectory string
	IgnorePaths      []string
	References       []string
	SuppressTree     bool
	Workers          int
	Warn             func(string)
}

// DumpResult holds the rendered-independent outcome of a run.
type DumpResult struct {
	WorkingDirectory string
	Tree             *TreeNode
	IgnorePaths      []string
	Files            []DisplayOutcome
	SuppressTree     bool
}
