// Package commands contains the core logic for tree discovery and file selection.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/ctxdump/internal/types"
	"github.com/temirov/ctxdump/internal/utils"
)

const (
	// warningSkipDirectoryFormat is used when a directory cannot be listed.
	warningSkipDirectoryFormat = "Warning: Skipping directory %s due to error: %v"
)

// RootDisplayName returns the root label for a working directory: a separator followed by its base name.
func RootDisplayName(workingDirectory string) string {
	baseName := filepath.Base(filepath.Clean(workingDirectory))
	separator := string(filepath.Separator)
	if baseName == separator {
		return separator
	}
	return separator + baseName
}

// Build discovers the directory tree rooted at rootPath.
// The root itself is always returned; when it is ignored it has no children.
func (treeBuilder *TreeBuilder) Build(rootName string, rootPath string) *types.TreeNode {
	rootNode := &types.TreeNode{
		Path: rootPath,
		Name: rootName,
		Type: types.NodeTypeDirectory,
	}
	if treeBuilder.Ignore.IsIgnored(rootPath) {
		return rootNode
	}
	rootNode.Children = treeBuilder.buildTreeNodes(rootPath)
	return rootNode
}

// buildTreeNodes recursively builds child nodes for the directory at currentDirectoryPath.
// A directory that cannot be listed contributes whatever entries were read before the failure.
func (treeBuilder *TreeBuilder) buildTreeNodes(currentDirectoryPath string) []*types.TreeNode {
	directoryEntries, readDirectoryError := os.ReadDir(currentDirectoryPath)
	if readDirectoryError != nil {
		treeBuilder.warn(fmt.Sprintf(warningSkipDirectoryFormat, currentDirectoryPath, readDirectoryError))
	}

	visibleEntries := make(map[string]os.DirEntry, len(directoryEntries))
	entryNames := make([]string, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if strings.HasPrefix(entryName, utils.HiddenEntryPrefix) {
			continue
		}
		visibleEntries[entryName] = directoryEntry
		entryNames = append(entryNames, entryName)
	}
	sort.Strings(entryNames)

	var nodes []*types.TreeNode
	for _, entryName := range entryNames {
		childPath := filepath.Join(currentDirectoryPath, entryName)
		if treeBuilder.Ignore.IsIgnored(childPath) {
			continue
		}
		node := &types.TreeNode{
			Path: childPath,
			Name: entryName,
			Type: types.NodeTypeFile,
		}
		if visibleEntries[entryName].IsDir() {
			node.Type = types.NodeTypeDirectory
			node.Children = treeBuilder.buildTreeNodes(childPath)
		}
		nodes = append(nodes, node)
	}
	return nodes
}
