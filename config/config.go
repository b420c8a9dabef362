// Package config loads adablock settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/adablock/artifact"
	"github.com/jonwraymond/adablock/block"
)

// Environment variables that override file settings.
const (
	EnvCompileCommand = "ADABLOCK_COMPILE_COMMAND"
	EnvProveCommand   = "ADABLOCK_PROVE_COMMAND"
	EnvAssertionFlag  = "ADABLOCK_ASSERTION_FLAG"
	EnvDefaultVersion = "ADABLOCK_DEFAULT_VERSION"
	EnvTempDir        = "ADABLOCK_TEMP_DIR"
	EnvRemoteRoot     = "ADABLOCK_REMOTE_ROOT"
)

// DefaultFile is the settings file looked up when no path is given.
const DefaultFile = "adablock.yaml"

// Settings is the on-disk configuration.
type Settings struct {
	Toolchain ToolchainSettings `yaml:"toolchain"`
	Scratch   ScratchSettings   `yaml:"scratch"`
	Logging   LoggingSettings   `yaml:"logging"`
}

// ToolchainSettings configures the compiler and verifier.
type ToolchainSettings struct {
	CompileCommand string   `yaml:"compile_command"`
	ProveCommand   string   `yaml:"prove_command"`
	AssertionFlag  string   `yaml:"assertion_flag"`
	DefaultVersion int      `yaml:"default_version"`
	ReapSuffixes   []string `yaml:"reap_suffixes"`
	ProveCacheDir  string   `yaml:"prove_cache_dir"`
}

// ScratchSettings selects where artifacts are written.
type ScratchSettings struct {
	TempDir    string `yaml:"temp_dir,omitempty"`
	RemoteRoot string `yaml:"remote_root,omitempty"`
}

// LoggingSettings configures the CLI logger.
type LoggingSettings struct {
	Level string `yaml:"level"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Toolchain: ToolchainSettings{
			CompileCommand: block.DefaultCompileCommand,
			ProveCommand:   block.DefaultProveCommand,
			AssertionFlag:  block.DefaultAssertionFlag,
			ReapSuffixes:   append([]string(nil), artifact.DefaultReapSuffixes...),
			ProveCacheDir:  artifact.DefaultProveCacheDir,
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}

// Load reads settings from a YAML file over the defaults, then applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %w", block.ErrConfiguration, path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("%w: reading %s: %w", block.ErrConfiguration, path, err)
	}

	if err := s.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the settings to path as YAML, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (s *Settings) applyEnvOverrides() error {
	if v := os.Getenv(EnvCompileCommand); v != "" {
		s.Toolchain.CompileCommand = v
	}
	if v := os.Getenv(EnvProveCommand); v != "" {
		s.Toolchain.ProveCommand = v
	}
	if v := os.Getenv(EnvAssertionFlag); v != "" {
		s.Toolchain.AssertionFlag = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDefaultVersion)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", block.ErrConfiguration, EnvDefaultVersion, v)
		}
		s.Toolchain.DefaultVersion = n
	}
	if v := os.Getenv(EnvTempDir); v != "" {
		s.Scratch.TempDir = v
	}
	if v := os.Getenv(EnvRemoteRoot); v != "" {
		s.Scratch.RemoteRoot = v
	}
	return nil
}

// BlockConfig maps the settings onto an executor configuration. Counter,
// Runner, and Logger are left for the caller.
func (s *Settings) BlockConfig() block.Config {
	cfg := block.Config{
		CompileCommand: s.Toolchain.CompileCommand,
		ProveCommand:   s.Toolchain.ProveCommand,
		AssertionFlag:  s.Toolchain.AssertionFlag,
		DefaultVersion: s.Toolchain.DefaultVersion,
		ProveCacheDir:  s.Toolchain.ProveCacheDir,
		TempDir:        s.Scratch.TempDir,
		RemoteRoot:     s.Scratch.RemoteRoot,
	}
	// An explicit empty list disables reaping; only nil selects the defaults.
	if s.Toolchain.ReapSuffixes != nil {
		cfg.ReapSuffixes = make([]string, len(s.Toolchain.ReapSuffixes))
		copy(cfg.ReapSuffixes, s.Toolchain.ReapSuffixes)
	}
	return cfg
}
