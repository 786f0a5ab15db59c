package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/ctxdump/internal/types"
	"github.com/temirov/ctxdump/internal/utils"
)

const (
	// DefaultWorkers bounds how many references are evaluated at once when none is configured.
	DefaultWorkers = 4

	errorWorkingDirectoryFormat = "Directory '%s' does not exist."
	errorAbsolutePathFormat     = "getting absolute path for %s: %w"
)

// ErrWorkingDirectoryInvalid marks a working directory that is missing or not a directory.
var ErrWorkingDirectoryInvalid = errors.New("invalid working directory")

// WorkingDirectoryError reports the working directory a run could not use.
type WorkingDirectoryError struct {
	Path string
}

func (workingDirectoryError WorkingDirectoryError) Error() string {
	return fmt.Sprintf(errorWorkingDirectoryFormat, workingDirectoryError.Path)
}

// Unwrap exposes ErrWorkingDirectoryInvalid for errors.Is checks.
func (workingDirectoryError WorkingDirectoryError) Unwrap() error {
	return ErrWorkingDirectoryInvalid
}

// ValidateWorkingDirectory returns the cleaned absolute form of path when it names an existing directory.
func ValidateWorkingDirectory(path string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(path)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, path, absolutePathError)
	}
	directoryInfo, statError := os.Stat(absolutePath)
	if statError != nil || !directoryInfo.IsDir() {
		return "", WorkingDirectoryError{Path: path}
	}
	return filepath.Clean(absolutePath), nil
}

// Dump builds the tree (unless suppressed) and evaluates every non-blank file reference.
// References are evaluated concurrently but outcomes keep the order of request.References.
func Dump(ctx context.Context, request types.DumpRequest) (types.DumpResult, error) {
	workingDirectory, validationError := ValidateWorkingDirectory(request.WorkingDirectory)
	if validationError != nil {
		return types.DumpResult{}, validationError
	}
	ignoreSet := utils.NewIgnoreSet(workingDirectory, request.IgnorePaths)

	result := types.DumpResult{
		WorkingDirectory: workingDirectory,
		IgnorePaths:      ignoreSet.Paths(),
		SuppressTree:     request.SuppressTree,
	}
	if !request.SuppressTree {
		treeBuilder := &TreeBuilder{Ignore: ignoreSet, Warn: request.Warn}
		result.Tree = treeBuilder.Build(RootDisplayName(workingDirectory), workingDirectory)
	}

	references := ParseFileReferences(request.References)
	outcomes, evaluationError := evaluateReferences(ctx, references, workingDirectory, ignoreSet, request.Workers)
	if evaluationError != nil {
		return types.DumpResult{}, evaluationError
	}
	result.Files = outcomes
	return result, nil
}

func evaluateReferences(
	ctx context.Context,
	references []types.FileReference,
	workingDirectory string,
	ignoreSet utils.IgnoreSet,
	workers int,
) ([]types.DisplayOutcome, error) {
	outcomes := make([]types.DisplayOutcome, len(references))
	if workers < 1 {
		workers = DefaultWorkers
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for index, reference := range references {
		index, reference := index, reference
		group.Go(func() error {
			if contextError := groupCtx.Err(); contextError != nil {
				return contextError
			}
			outcomes[index] = EvaluateReference(reference, workingDirectory, ignoreSet)
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}
	return outcomes, nil
}

// ParseFileReferences converts raw reference strings, dropping blank entries.
func ParseFileReferences(rawReferences []string) []types.FileReference {
	references := make([]types.FileReference, 0, len(rawReferences))
	for _, rawReference := range rawReferences {
		if strings.TrimSpace(rawReference) == "" {
			continue
		}
		references = append(references, ParseFileReference(rawReference))
	}
	return references
}
