package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/ctxdump/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds defaults that command line flags may override.
type ApplicationConfiguration struct {
	IgnorePaths   []string           `mapstructure:"ignore_paths" yaml:"ignore_paths"`
	IgnoreTree    *bool              `mapstructure:"ignore_tree" yaml:"ignore_tree"`
	UseIgnoreFile *bool              `mapstructure:"use_ignore_file" yaml:"use_ignore_file"`
	Format        string             `mapstructure:"format" yaml:"format"`
	Copy          *bool              `mapstructure:"copy" yaml:"copy"`
	Workers       *int               `mapstructure:"workers" yaml:"workers"`
	Tokens        TokenConfiguration `mapstructure:"tokens" yaml:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled" yaml:"enabled"`
	Model   string `mapstructure:"model" yaml:"model"`
}

// LoadApplicationConfiguration loads configuration from the global file and then the local one.
// Values from the local file override global values. Missing discovered files are skipped,
// while a missing explicit file is an error.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration
	for _, source := range configurationSources(workingDirectory, options.ExplicitFilePath) {
		layer, loadErr := loadConfigurationFromPath(source.path, source.required)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(layer)
	}
	merged.IgnorePaths = utils.DeduplicatePatterns(merged.IgnorePaths)
	return merged, nil
}

type configurationSource struct {
	path     string
	required bool
}

// configurationSources lists candidate configuration files from lowest to highest precedence.
// An explicit path replaces the local file but not the global one.
func configurationSources(workingDirectory, explicitPath string) []configurationSource {
	var sources []configurationSource
	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		sources = append(sources, configurationSource{path: filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)})
	}
	if explicitPath != "" {
		return append(sources, configurationSource{path: utils.ResolvePath(explicitPath, workingDirectory), required: true})
	}
	return append(sources, configurationSource{path: filepath.Join(workingDirectory, utils.ConfigFileName)})
}

func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			if required {
				return ApplicationConfiguration{}, fmt.Errorf("configuration file %s does not exist", path)
			}
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
// A non-empty override ignore list replaces the receiver's list.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if len(override.IgnorePaths) > 0 {
		result.IgnorePaths = append([]string{}, utils.DeduplicatePatterns(override.IgnorePaths)...)
	}
	if override.IgnoreTree != nil {
		result.IgnoreTree = cloneBool(override.IgnoreTree)
	}
	if override.UseIgnoreFile != nil {
		result.UseIgnoreFile = cloneBool(override.UseIgnoreFile)
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	if override.Workers != nil {
		result.Workers = cloneInt(override.Workers)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

// BoolOrDefault dereferences value, returning fallback when it is unset.
func BoolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

// IntOrDefault dereferences value, returning fallback when it is unset.
func IntOrDefault(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
