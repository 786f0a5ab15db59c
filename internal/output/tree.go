package output

import (
	"github.com/temirov/ctxdump/internal/types"
)

// RenderTreeLines renders the built tree as connector-annotated lines.
// The first line is the root name; the root's children start one indentation block in.
// Child order is taken as-is from the node sequence.
func RenderTreeLines(root *types.TreeNode) []string {
	if root == nil {
		return nil
	}
	lines := []string{root.Name}
	return appendChildLines(lines, root.Children, treeLastPadding)
}

func appendChildLines(lines []string, children []*types.TreeNode, prefix string) []string {
	for index, child := range children {
		if child == nil {
			continue
		}
		linePrefix, childPrefix := treeNodeLinePrefix(prefix, index == len(children)-1)
		lines = append(lines, linePrefix+child.Name)
		if child.IsDirectory() {
			lines = appendChildLines(lines, child.Children, childPrefix)
		}
	}
	return lines
}

func treeNodeLinePrefix(prefix string, isLast bool) (string, string) {
	if isLast {
		return prefix + treeLastConnector, prefix + treeLastPadding
	}
	return prefix + treeBranchConnector, prefix + treeBranchPadding
}
