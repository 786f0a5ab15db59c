package utils

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion     = "unknown"
	developmentVersion = "(devel)"
	gitExecutable      = "git"
)

// gitDescribeArguments are tried in order; the first non-empty answer wins.
var gitDescribeArguments = [][]string{
	{"describe", "--tags", "--exact-match"},
	{"describe", "--tags", "--long", "--dirty"},
}

// errGitDirectoryNotFound is returned when no ancestor holds a .git directory.
var errGitDirectoryNotFound = errors.New("git directory not found")

// GetApplicationVersion reports the module version stamped by the Go toolchain,
// falling back to git describe when running from a source checkout.
func GetApplicationVersion() string {
	if buildInfo, available := debug.ReadBuildInfo(); available {
		if version := buildInfo.Main.Version; version != "" && version != developmentVersion {
			return version
		}
	}
	repositoryRoot, searchError := findGitDirectory(".")
	if searchError != nil {
		return unknownVersion
	}
	for _, arguments := range gitDescribeArguments {
		// #nosec G204
		describeCommand := exec.Command(gitExecutable, arguments...)
		describeCommand.Dir = repositoryRoot
		describeOutput, describeError := describeCommand.Output()
		if describeError != nil {
			continue
		}
		if version := strings.TrimSpace(string(describeOutput)); version != "" {
			return version
		}
	}
	return unknownVersion
}

// findGitDirectory returns the nearest directory at or above startDirectory that contains .git.
func findGitDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return "", absoluteError
	}
	for currentDirectory := absoluteStartDirectory; ; currentDirectory = filepath.Dir(currentDirectory) {
		if directoryInfo, statError := os.Stat(filepath.Join(currentDirectory, GitDirectoryName)); statError == nil && directoryInfo.IsDir() {
			return currentDirectory, nil
		}
		if filepath.Dir(currentDirectory) == currentDirectory {
			return "", errGitDirectoryNotFound
		}
	}
}
