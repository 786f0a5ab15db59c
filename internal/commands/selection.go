package commands

import (
	"os"

	"github.com/temirov/ctxdump/internal/types"
	"github.com/temirov/ctxdump/internal/utils"
)

// Warning reasons reported for rejected file references.
const (
	ReasonOutsideWorkingDirectory = "is not under the specified cwd"
	ReasonNotFound                = "does not exist"
	ReasonDirectory               = "is a directory, not a file"
	ReasonNotRegularFile          = "is not a regular file"
	ReasonIgnored                 = "is under an ignored path"
	// reasonStatFailedPrefix precedes the underlying error when a path cannot be inspected.
	reasonStatFailedPrefix = "could not be inspected: "
)

// EvaluateReference validates a file reference and either renders its content or explains the rejection.
// Checks run in a fixed order and the first failure wins: containment, existence, type, ignore.
func EvaluateReference(reference types.FileReference, workingDirectory string, ignoreSet utils.IgnoreSet) types.DisplayOutcome {
	absolutePath := utils.ResolvePath(reference.Path, workingDirectory)
	outcome := types.DisplayOutcome{
		AbsolutePath: absolutePath,
		RelativePath: utils.RelativePathOrSelf(absolutePath, workingDirectory),
		Range:        reference.Range,
	}

	if !utils.IsWithinPath(absolutePath, workingDirectory) {
		return warned(outcome, ReasonOutsideWorkingDirectory)
	}

	fileInfo, statError := os.Stat(absolutePath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return warned(outcome, ReasonNotFound)
		}
		return warned(outcome, reasonStatFailedPrefix+statError.Error())
	}
	if fileInfo.IsDir() {
		return warned(outcome, ReasonDirectory)
	}
	if !fileInfo.Mode().IsRegular() {
		return warned(outcome, ReasonNotRegularFile)
	}

	if ignoreSet.IsIgnored(absolutePath) {
		return warned(outcome, ReasonIgnored)
	}

	outcome.Kind = types.OutcomeShown
	content, readError := ReadContent(absolutePath, reference.Range)
	if readError != nil {
		outcome.ReadError = readError.Error()
		return outcome
	}
	outcome.Content = content
	return outcome
}

func warned(outcome types.DisplayOutcome, reason string) types.DisplayOutcome {
	outcome.Kind = types.OutcomeWarned
	outcome.Reason = reason
	return outcome
}
