package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/ctxdump/internal/commands"
	"github.com/temirov/ctxdump/internal/types"
	"github.com/temirov/ctxdump/internal/utils"
)

// writeFixture creates files (relative slash paths) under rootDirectory.
func writeFixture(testingHandle *testing.T, rootDirectory string, files map[string]string) {
	testingHandle.Helper()
	for relativePath, content := range files {
		absolutePath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		require.NoError(testingHandle, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testingHandle, os.WriteFile(absolutePath, []byte(content), 0o644))
	}
}

func childNames(node *types.TreeNode) []string {
	names := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		names = append(names, child.Name)
	}
	return names
}

// TestTreeBuilderBuild verifies ordering, hidden entries and ignore boundaries.
func TestTreeBuilderBuild(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeFixture(testingHandle, rootDirectory, map[string]string{
		"README.md":          "readme",
		"file4.txt":          "four",
		".env":               "hidden",
		".git/config":        "hidden",
		"folder1/file1.txt":  "one",
		"folder10/file.txt":  "ten",
		"folder2/b.txt":      "b",
		"folder2/a.txt":      "a",
		"folder2/nested/c.c": "c",
	})

	testCases := []struct {
		name            string
		ignorePaths     []string
		expectedRoot    []string
		expectedFolder2 []string
	}{
		{
			name:            "no ignores",
			expectedRoot:    []string{"README.md", "file4.txt", "folder1", "folder10", "folder2"},
			expectedFolder2: []string{"a.txt", "b.txt", "nested"},
		},
		{
			name:            "ignore is a path prefix not a string prefix",
			ignorePaths:     []string{"folder1"},
			expectedRoot:    []string{"README.md", "file4.txt", "folder10", "folder2"},
			expectedFolder2: []string{"a.txt", "b.txt", "nested"},
		},
		{
			name:            "nested ignore",
			ignorePaths:     []string{"folder2/nested", "file4.txt"},
			expectedRoot:    []string{"README.md", "folder1", "folder10", "folder2"},
			expectedFolder2: []string{"a.txt", "b.txt"},
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			treeBuilder := &commands.TreeBuilder{Ignore: utils.NewIgnoreSet(rootDirectory, testCase.ignorePaths)}
			rootNode := treeBuilder.Build(commands.RootDisplayName(rootDirectory), rootDirectory)

			require.NotNil(subTest, rootNode)
			assert.Equal(subTest, types.NodeTypeDirectory, rootNode.Type)
			assert.Equal(subTest, testCase.expectedRoot, childNames(rootNode))
			for _, child := range rootNode.Children {
				if child.Name == "folder2" {
					assert.Equal(subTest, testCase.expectedFolder2, childNames(child))
				}
				if child.Name == "README.md" {
					assert.Equal(subTest, types.NodeTypeFile, child.Type)
					assert.Equal(subTest, filepath.Join(rootDirectory, "README.md"), child.Path)
				}
			}
		})
	}
}

// TestTreeBuilderIgnoredRoot verifies that ignoring the working directory leaves an empty root.
func TestTreeBuilderIgnoredRoot(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeFixture(testingHandle, rootDirectory, map[string]string{"file.txt": "x"})

	treeBuilder := &commands.TreeBuilder{Ignore: utils.NewIgnoreSet(rootDirectory, []string{"."})}
	rootNode := treeBuilder.Build("/root", rootDirectory)
	assert.Equal(testingHandle, "/root", rootNode.Name)
	assert.Empty(testingHandle, rootNode.Children)
}

// TestTreeBuilderWarnsOnUnreadableDirectory verifies listing failures are reported and skipped.
func TestTreeBuilderWarnsOnUnreadableDirectory(testingHandle *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		testingHandle.Skip("permission bits are not enforced")
	}
	rootDirectory := testingHandle.TempDir()
	writeFixture(testingHandle, rootDirectory, map[string]string{"locked/secret.txt": "x", "open.txt": "y"})
	lockedDirectory := filepath.Join(rootDirectory, "locked")
	require.NoError(testingHandle, os.Chmod(lockedDirectory, 0o000))
	testingHandle.Cleanup(func() { _ = os.Chmod(lockedDirectory, 0o755) })

	var warnings []string
	treeBuilder := &commands.TreeBuilder{Warn: func(message string) { warnings = append(warnings, message) }}
	rootNode := treeBuilder.Build("/root", rootDirectory)

	assert.Equal(testingHandle, []string{"locked", "open.txt"}, childNames(rootNode))
	assert.Empty(testingHandle, rootNode.Children[0].Children)
	require.Len(testingHandle, warnings, 1)
	assert.Contains(testingHandle, warnings[0], lockedDirectory)
}

func TestRootDisplayName(testingHandle *testing.T) {
	separator := string(filepath.Separator)
	assert.Equal(testingHandle, separator+"project", commands.RootDisplayName(filepath.Join(separator, "tmp", "project")))
	assert.Equal(testingHandle, separator+"project", commands.RootDisplayName(filepath.Join(separator, "tmp", "project")+separator))
}

// TestEvaluateReference verifies the first failing check decides the warning.
func TestEvaluateReference(testingHandle *testing.T) {
	rootDirectory := filepath.Join(testingHandle.TempDir(), "project")
	writeFixture(testingHandle, rootDirectory, map[string]string{
		"file4.txt":         "four\n",
		"folder1/file1.txt": "one\n",
		"folder2/file3.txt": "first\nsecond\nthird\n",
		"binary.dat":        "\xff\xfe\x00",
	})
	ignoreSet := utils.NewIgnoreSet(rootDirectory, []string{"folder1"})

	testCases := []struct {
		name           string
		reference      string
		expectedKind   types.OutcomeKind
		expectedPath   string
		expectedReason string
		expectedBody   string
		expectReadErr  bool
	}{
		{name: "plain file", reference: "file4.txt", expectedKind: types.OutcomeShown, expectedPath: "file4.txt", expectedBody: "four\n"},
		{name: "line range", reference: "folder2/file3.txt:2-2", expectedKind: types.OutcomeShown, expectedPath: "folder2/file3.txt", expectedBody: "second\n"},
		{name: "open start", reference: "folder2/file3.txt:-2", expectedKind: types.OutcomeShown, expectedPath: "folder2/file3.txt", expectedBody: "first\nsecond\n"},
		{name: "ignored", reference: "folder1/file1.txt", expectedKind: types.OutcomeWarned, expectedPath: "folder1/file1.txt", expectedReason: commands.ReasonIgnored},
		{name: "missing", reference: "nope.txt", expectedKind: types.OutcomeWarned, expectedPath: "nope.txt", expectedReason: commands.ReasonNotFound},
		{name: "directory", reference: "folder2", expectedKind: types.OutcomeWarned, expectedPath: "folder2", expectedReason: commands.ReasonDirectory},
		{name: "outside and missing", reference: "../elsewhere.txt", expectedKind: types.OutcomeWarned, expectedPath: "../elsewhere.txt", expectedReason: commands.ReasonOutsideWorkingDirectory},
		{name: "sibling sharing a prefix", reference: "../project-other/x.txt", expectedKind: types.OutcomeWarned, expectedPath: "../project-other/x.txt", expectedReason: commands.ReasonOutsideWorkingDirectory},
		{name: "invalid utf8", reference: "binary.dat", expectedKind: types.OutcomeShown, expectedPath: "binary.dat", expectReadErr: true},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			outcome := commands.EvaluateReference(commands.ParseFileReference(testCase.reference), rootDirectory, ignoreSet)
			assert.Equal(subTest, testCase.expectedKind, outcome.Kind)
			assert.Equal(subTest, testCase.expectedPath, outcome.RelativePath)
			assert.Equal(subTest, testCase.expectedReason, outcome.Reason)
			if testCase.expectReadErr {
				assert.NotEmpty(subTest, outcome.ReadError)
				assert.Empty(subTest, outcome.Content)
				return
			}
			assert.Empty(subTest, outcome.ReadError)
			assert.Equal(subTest, testCase.expectedBody, outcome.Content)
		})
	}
}

func TestParseFileReference(testingHandle *testing.T) {
	testCases := []struct {
		raw           string
		expectedPath  string
		expectedRange types.LineRange
	}{
		{raw: "main.go", expectedPath: "main.go"},
		{raw: "main.go:3-7", expectedPath: "main.go", expectedRange: types.LineRange{Start: 3, End: 7}},
		{raw: "main.go:3", expectedPath: "main.go", expectedRange: types.LineRange{Start: 3}},
		{raw: "main.go:3-", expectedPath: "main.go", expectedRange: types.LineRange{Start: 3}},
		{raw: "main.go:-7", expectedPath: "main.go", expectedRange: types.LineRange{End: 7}},
		{raw: "main.go:", expectedPath: "main.go:"},
		{raw: "main.go:a-b", expectedPath: "main.go:a-b"},
		{raw: "main.go:1-2-3", expectedPath: "main.go:1-2-3"},
		{raw: "dir:name/file.txt", expectedPath: "dir:name/file.txt"},
		{raw: ":5", expectedPath: ":5"},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.raw, func(subTest *testing.T) {
			reference := commands.ParseFileReference(testCase.raw)
			assert.Equal(subTest, testCase.raw, reference.Raw)
			assert.Equal(subTest, testCase.expectedPath, reference.Path)
			assert.Equal(subTest, testCase.expectedRange, reference.Range)
		})
	}
}

func TestSliceLines(testingHandle *testing.T) {
	content := "a\nb\nc\nd\n"
	testCases := []struct {
		name      string
		lineRange types.LineRange
		expected  string
	}{
		{name: "unset returns content", expected: content},
		{name: "full range is identity", lineRange: types.LineRange{Start: 1, End: 4}, expected: content},
		{name: "middle", lineRange: types.LineRange{Start: 2, End: 3}, expected: "b\nc\n"},
		{name: "open end", lineRange: types.LineRange{Start: 3}, expected: "c\nd\n"},
		{name: "open start", lineRange: types.LineRange{End: 1}, expected: "a\n"},
		{name: "end clamped", lineRange: types.LineRange{Start: 4, End: 99}, expected: "d\n"},
		{name: "start beyond end of file", lineRange: types.LineRange{Start: 5}, expected: ""},
		{name: "start after end", lineRange: types.LineRange{Start: 3, End: 2}, expected: ""},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			assert.Equal(subTest, testCase.expected, commands.SliceLines(content, testCase.lineRange))
		})
	}

	assert.Equal(testingHandle, "x\ny", commands.SliceLines("x\ny", types.LineRange{Start: 1, End: 2}))
	assert.Equal(testingHandle, "y", commands.SliceLines("x\ny", types.LineRange{Start: 2}))
	assert.Equal(testingHandle, "", commands.SliceLines("", types.LineRange{Start: 1}))
}

// TestDumpPreservesReferenceOrder verifies concurrent evaluation keeps input order and drops blanks.
func TestDumpPreservesReferenceOrder(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	files := map[string]string{}
	var references []string
	for _, name := range []string{"e.txt", "d.txt", "c.txt", "b.txt", "a.txt"} {
		files[name] = name + "\n"
		references = append(references, name, " ")
	}
	writeFixture(testingHandle, rootDirectory, files)

	result, dumpError := commands.Dump(context.Background(), types.DumpRequest{
		WorkingDirectory: rootDirectory,
		References:       references,
		SuppressTree:     true,
		Workers:          2,
	})
	require.NoError(testingHandle, dumpError)
	assert.Nil(testingHandle, result.Tree)
	require.Len(testingHandle, result.Files, 5)
	for index, name := range []string{"e.txt", "d.txt", "c.txt", "b.txt", "a.txt"} {
		assert.Equal(testingHandle, name, result.Files[index].RelativePath)
		assert.Equal(testingHandle, name+"\n", result.Files[index].Content)
	}
}

func TestDumpBuildsTreeAndRejectsMissingDirectory(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeFixture(testingHandle, rootDirectory, map[string]string{"keep/a.txt": "a", "skip/b.txt": "b"})

	result, dumpError := commands.Dump(context.Background(), types.DumpRequest{
		WorkingDirectory: rootDirectory,
		IgnorePaths:      []string{"skip"},
	})
	require.NoError(testingHandle, dumpError)
	require.NotNil(testingHandle, result.Tree)
	assert.Equal(testingHandle, []string{"keep"}, childNames(result.Tree))
	assert.Equal(testingHandle, []string{filepath.Join(rootDirectory, "skip")}, result.IgnorePaths)
	assert.Empty(testingHandle, result.Files)

	missingDirectory := filepath.Join(rootDirectory, "absent")
	_, missingError := commands.Dump(context.Background(), types.DumpRequest{WorkingDirectory: missingDirectory})
	require.ErrorIs(testingHandle, missingError, commands.ErrWorkingDirectoryInvalid)
	assert.EqualError(testingHandle, missingError, "Directory '"+missingDirectory+"' does not exist.")

	filePath := filepath.Join(rootDirectory, "keep", "a.txt")
	_, fileError := commands.ValidateWorkingDirectory(filePath)
	require.ErrorIs(testingHandle, fileError, commands.ErrWorkingDirectoryInvalid)
}
