// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/ctxdump/internal/commands"
	"github.com/temirov/ctxdump/internal/config"
	"github.com/temirov/ctxdump/internal/output"
	"github.com/temirov/ctxdump/internal/services/clipboard"
	"github.com/temirov/ctxdump/internal/tokenizer"
	"github.com/temirov/ctxdump/internal/types"
	"github.com/temirov/ctxdump/internal/utils"
)

const (
	workingDirectoryFlagName = "cwd"
	ignorePathFlagName       = "ignore-path"
	ignorePathShorthand      = "e"
	ignoreTreeFlagName       = "ignore-tree"
	noIgnoreFileFlagName     = "no-ignore-file"
	formatFlagName           = "format"
	copyFlagName             = "copy"
	tokensFlagName           = "tokens"
	modelFlagName            = "model"
	workersFlagName          = "workers"
	configFlagName           = "config"
	versionFlagName          = "version"
	globalFlagName           = "global"
	forceFlagName            = "force"

	defaultWorkingDirectory = "."
	versionTemplate         = "ctxdump version: %s\n"
	rootUse                 = "ctxdump [file references...]"
	rootShortDescription    = "print a directory tree and selected file contents"
	rootLongDescription     = `ctxdump prints the directory tree of a working directory followed by the contents of the requested files.
Each file reference is a path relative to --cwd, optionally followed by a line range: path:S-E, path:S, path:S- or path:-E.
A name that itself ends in :<digits> is read as a line range; append a range to read such a file, e.g. notes:12:1- for the file notes:12.
Paths passed with --ignore-path are hidden from the tree and refused as file references.`
	rootUsageExample = `  # Tree of the current directory plus two files
  ctxdump main.go internal/cli/cli.go

  # Lines 10 through 20 of a file without the tree
  ctxdump --ignore-tree internal/cli/cli.go:10-20

  # Hide build output and render JSON
  ctxdump -e build -e vendor --format json`
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write a default configuration to ./.ctxdump.yaml, or to ~/.ctxdump/config.yaml with --global.
An existing file is only replaced with --force.`

	workingDirectoryFlagDescription = "directory that scopes the tree and every file reference"
	ignorePathFlagDescription       = "path to hide from the tree and refuse as a file reference (repeatable)"
	ignoreTreeFlagDescription       = "do not print the directory tree"
	noIgnoreFileFlagDescription     = "do not read " + config.IgnoreFileName
	formatFlagDescription           = "output format: raw or json"
	copyFlagDescription             = "copy the rendered output to the clipboard"
	tokensFlagDescription           = "log a token estimate of the rendered output"
	modelFlagDescription            = "tokenizer model to use for token counting"
	workersFlagDescription          = "number of file references read concurrently"
	configFlagDescription           = "configuration file to use instead of ./" + utils.ConfigFileName
	versionFlagDescription          = "display application version"
	globalFlagDescription           = "write the global configuration file"
	forceFlagDescription            = "overwrite an existing configuration file"

	invalidFormatMessage       = "Invalid format value '%s'"
	invalidWorkersMessage      = "Invalid workers value %d"
	tokenSummaryFormat         = "Tokens: %d (%s)"
	tokenSkippedMessage        = "Tokens: output is not valid UTF-8, skipping count"
	clipboardWarningFormat     = "Warning: %v"
	configurationWrittenFormat = "Configuration written to %s\n"
)

// dependencies are the collaborators a command run talks to.
type dependencies struct {
	logger     *zap.Logger
	copier     clipboard.Copier
	newCounter func(tokenizer.Config) (tokenizer.Counter, string, error)
}

// dumpOptions stores the raw flag values of the root command.
type dumpOptions struct {
	workingDirectory string
	ignorePaths      []string
	ignoreTree       bool
	noIgnoreFile     bool
	format           string
	copyOutput       bool
	tokens           bool
	model            string
	workers          int
	configPath       string
	showVersion      bool
}

// runSettings are the effective settings after configuration files and flags are merged.
type runSettings struct {
	format        string
	suppressTree  bool
	useIgnoreFile bool
	copyOutput    bool
	tokens        bool
	model         string
	workers       int
}

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON:
		return true
	default:
		return false
	}
}

// Execute runs the ctxdump application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(dependencies{
		logger:     logger,
		copier:     clipboard.NewService(),
		newCounter: tokenizer.NewCounter,
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(deps dependencies) *cobra.Command {
	if deps.logger == nil {
		deps.logger = zap.NewNop()
	}
	var options dumpOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, writeError := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return writeError
			}
			return runDump(command, arguments, options, deps)
		},
	}
	rootCommand.CompletionOptions.DisableDefaultCmd = true

	rootCommand.PersistentFlags().StringVar(&options.workingDirectory, workingDirectoryFlagName, defaultWorkingDirectory, workingDirectoryFlagDescription)
	flags := rootCommand.Flags()
	flags.StringArrayVarP(&options.ignorePaths, ignorePathFlagName, ignorePathShorthand, nil, ignorePathFlagDescription)
	registerBooleanFlag(flags, &options.ignoreTree, ignoreTreeFlagName, ignoreTreeFlagDescription)
	registerBooleanFlag(flags, &options.noIgnoreFile, noIgnoreFileFlagName, noIgnoreFileFlagDescription)
	flags.StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerBooleanFlag(flags, &options.copyOutput, copyFlagName, copyFlagDescription)
	registerBooleanFlag(flags, &options.tokens, tokensFlagName, tokensFlagDescription)
	flags.StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	flags.IntVar(&options.workers, workersFlagName, commands.DefaultWorkers, workersFlagDescription)
	flags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flags, &options.showVersion, versionFlagName, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(&options))
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(rootOptions *dumpOptions) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			initOptions := config.InitOptions{Target: target, Force: force}
			if target == config.InitTargetLocal {
				workingDirectory, validationError := commands.ValidateWorkingDirectory(rootOptions.workingDirectory)
				if validationError != nil {
					return validationError
				}
				initOptions.WorkingDirectory = workingDirectory
			}
			writtenPath, initError := config.InitializeConfiguration(initOptions)
			if initError != nil {
				return initError
			}
			_, writeError := fmt.Fprintf(command.OutOrStdout(), configurationWrittenFormat, writtenPath)
			return writeError
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, forceFlagDescription)
	return initCommand
}

// runDump resolves settings, performs the dump and writes the rendered result to stdout.
func runDump(command *cobra.Command, references []string, options dumpOptions, deps dependencies) error {
	workingDirectory, validationError := commands.ValidateWorkingDirectory(options.workingDirectory)
	if validationError != nil {
		return validationError
	}
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	settings := resolveSettings(command.Flags(), options, applicationConfiguration)
	if !isSupportedFormat(settings.format) {
		return fmt.Errorf(invalidFormatMessage, settings.format)
	}
	if settings.workers < 1 {
		return fmt.Errorf(invalidWorkersMessage, settings.workers)
	}

	ignorePaths, ignoreError := config.LoadCombinedIgnorePaths(workingDirectory, applicationConfiguration.IgnorePaths, options.ignorePaths, settings.useIgnoreFile)
	if ignoreError != nil {
		return ignoreError
	}

	commandContext := command.Context()
	if commandContext == nil {
		commandContext = context.Background()
	}
	result, dumpError := commands.Dump(commandContext, types.DumpRequest{
		WorkingDirectory: workingDirectory,
		IgnorePaths:      ignorePaths,
		References:       references,
		SuppressTree:     settings.suppressTree,
		Workers:          settings.workers,
		Warn: func(message string) {
			deps.logger.Warn(message)
		},
	})
	if dumpError != nil {
		return dumpError
	}

	rendered, renderError := output.Render(settings.format, result)
	if renderError != nil {
		return renderError
	}
	if _, writeError := io.WriteString(command.OutOrStdout(), rendered); writeError != nil {
		return writeError
	}

	if settings.tokens {
		if tokenError := logTokenEstimate(deps, settings.model, rendered); tokenError != nil {
			return tokenError
		}
	}
	if settings.copyOutput && deps.copier != nil {
		if copyError := deps.copier.Copy(rendered); copyError != nil {
			deps.logger.Warn(fmt.Sprintf(clipboardWarningFormat, copyError))
		}
	}
	return nil
}

// resolveSettings layers explicitly set flags over configuration file values over built-in defaults.
func resolveSettings(flags *pflag.FlagSet, options dumpOptions, applicationConfiguration config.ApplicationConfiguration) runSettings {
	settings := runSettings{
		format:        types.FormatRaw,
		suppressTree:  config.BoolOrDefault(applicationConfiguration.IgnoreTree, false),
		useIgnoreFile: config.BoolOrDefault(applicationConfiguration.UseIgnoreFile, true),
		copyOutput:    config.BoolOrDefault(applicationConfiguration.Copy, false),
		tokens:        config.BoolOrDefault(applicationConfiguration.Tokens.Enabled, false),
		model:         tokenizer.DefaultModel,
		workers:       config.IntOrDefault(applicationConfiguration.Workers, commands.DefaultWorkers),
	}
	if applicationConfiguration.Format != "" {
		settings.format = applicationConfiguration.Format
	}
	if applicationConfiguration.Tokens.Model != "" {
		settings.model = applicationConfiguration.Tokens.Model
	}

	if flags.Changed(formatFlagName) {
		settings.format = options.format
	}
	if flags.Changed(ignoreTreeFlagName) {
		settings.suppressTree = options.ignoreTree
	}
	if flags.Changed(noIgnoreFileFlagName) {
		settings.useIgnoreFile = !options.noIgnoreFile
	}
	if flags.Changed(copyFlagName) {
		settings.copyOutput = options.copyOutput
	}
	if flags.Changed(tokensFlagName) {
		settings.tokens = options.tokens
	}
	if flags.Changed(modelFlagName) {
		settings.model = options.model
	}
	if flags.Changed(workersFlagName) {
		settings.workers = options.workers
	}
	settings.format = strings.ToLower(strings.TrimSpace(settings.format))
	return settings
}

func logTokenEstimate(deps dependencies, model string, rendered string) error {
	counter, resolvedModel, counterError := deps.newCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		return counterError
	}
	countResult, countError := tokenizer.CountText(counter, rendered)
	if countError != nil {
		return countError
	}
	if !countResult.Counted {
		deps.logger.Info(tokenSkippedMessage)
		return nil
	}
	deps.logger.Info(fmt.Sprintf(tokenSummaryFormat, countResult.Tokens, resolvedModel))
	return nil
}
