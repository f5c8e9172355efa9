// Package config manages application configuration using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variable overrides, e.g. GITHOOKS_HOOKS_TREE.
const EnvPrefix = "GITHOOKS"

// FileName is the config file name searched for, without extension.
const FileName = "githooks"

// Config represents the application configuration.
type Config struct {
	// HooksTree is the hook-definitions directory, relative to the repository root.
	HooksTree string `mapstructure:"hooks_tree"`
	// Dispatcher is the symlink target installed into every hook slot. Empty
	// means the running githooks executable.
	Dispatcher string `mapstructure:"dispatcher"`
	// Hooks maps a git event to the built-in checks it runs, in order.
	Hooks       map[string][]string `mapstructure:"hooks"`
	Breakpoints BreakpointsConfig   `mapstructure:"breakpoints"`
	Imports     ImportsConfig       `mapstructure:"imports"`
	Release     ReleaseConfig       `mapstructure:"release"`

	fileUsed string
}

// BreakpointsConfig configures the breakpoint detector.
type BreakpointsConfig struct {
	Suffix        string   `mapstructure:"suffix"`
	CommentMarker string   `mapstructure:"comment_marker"`
	Markers       []string `mapstructure:"markers"`
}

// ImportsConfig configures the import-order checker.
type ImportsConfig struct {
	Suffix  string `mapstructure:"suffix"`
	Command string `mapstructure:"command"`
}

// ReleaseConfig configures the release pipeline.
type ReleaseConfig struct {
	Branch         string   `mapstructure:"branch"`
	Build          string   `mapstructure:"build"`
	Test           string   `mapstructure:"test"`
	Upload         string   `mapstructure:"upload"`
	TestRepository string   `mapstructure:"test_repository"`
	Clean          []string `mapstructure:"clean"`
	ProjectFile    string   `mapstructure:"project_file"`
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file; it must exist when set.
	File string
	// Dir is searched first for githooks.{toml,yaml,yml}, typically the
	// repository root.
	Dir string
	// Flags are bound on top of files and environment.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"hooks-tree": "hooks_tree",
	"dispatcher": "dispatcher",
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("hooks_tree", ".githooks")
	v.SetDefault("dispatcher", "")
	v.SetDefault("hooks", map[string]any{
		"pre-commit": []string{"breakpoints", "imports"},
	})

	v.SetDefault("breakpoints.suffix", ".py")
	v.SetDefault("breakpoints.comment_marker", "#")
	v.SetDefault("breakpoints.markers", []string{"breakpoint()", "set_trace()", "pdb.set_trace"})

	v.SetDefault("imports.suffix", ".py")
	v.SetDefault("imports.command", "isort --check-only --diff")

	v.SetDefault("release.branch", "master")
	v.SetDefault("release.build", "python setup.py sdist bdist_wheel")
	v.SetDefault("release.test", "pytest")
	v.SetDefault("release.upload", "twine upload dist/*")
	v.SetDefault("release.test_repository", "testpypi")
	v.SetDefault("release.clean", []string{"build", "dist", "*.egg-info"})
	v.SetDefault("release.project_file", "pyproject.toml")
}

// Load loads configuration from files, environment variables and flags.
// It searches for githooks.{toml,yaml,yml} in the following order, using the
// first one found:
// 1. opts.Dir (the repository root)
// 2. $XDG_CONFIG_HOME/githooks/ (or ~/.config/githooks/)
// 3. /etc/githooks/
//
// Environment variables override file settings using the prefix GITHOOKS_
// For example: GITHOOKS_RELEASE_BRANCH
func Load(opts Options) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(FileName)
		if opts.Dir != "" {
			v.AddConfigPath(opts.Dir)
		}
		v.AddConfigPath(getXDGConfigPath())
		v.AddConfigPath("/etc/githooks/")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only an explicit file is required to exist.
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper loads configuration using a provided Viper instance.
// This is useful for testing or when you want to configure Viper differently.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.fileUsed = v.ConfigFileUsed()
	return &cfg, nil
}

// FileUsed returns the path of the config file that was loaded, if any.
func (c *Config) FileUsed() string {
	return c.fileUsed
}

// HooksTreePath resolves HooksTree against root.
func (c *Config) HooksTreePath(root string) string {
	if filepath.IsAbs(c.HooksTree) {
		return c.HooksTree
	}
	return filepath.Join(root, c.HooksTree)
}

// getXDGConfigPath returns the XDG config directory for githooks.
func getXDGConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "githooks")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home
		return "."
	}

	return filepath.Join(homeDir, ".config", "githooks")
}
