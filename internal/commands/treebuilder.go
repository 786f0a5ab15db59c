package commands

import "github.com/temirov/ctxdump/internal/utils"

// TreeBuilder builds directory tree nodes using configured options.
type TreeBuilder struct {
	Ignore utils.IgnoreSet
	// Warn receives messages about directories that could not be listed.
	Warn func(string)
}

func (treeBuilder *TreeBuilder) warn(message string) {
	if treeBuilder.Warn != nil {
		treeBuilder.Warn(message)
	}
}
