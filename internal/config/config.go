package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/tosemver/internal/core"
	"github.com/indaco/tosemver/internal/parser"
	"github.com/indaco/tosemver/internal/rules"
)

const (
	// DefaultConfigFile is looked up in the working directory.
	DefaultConfigFile = ".tosemver.yaml"

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "TOSEMVER_CONFIG"

	// ConfigFilePerm defines secure file permissions for config files (owner read/write only).
	ConfigFilePerm = core.PermOwnerRW

	// DefaultTheme is the prompt theme used when none is configured.
	DefaultTheme = "tosemver"
)

// Config is the main configuration structure for tosemver.
type Config struct {
	// Sources lists the files whose versions the "sources" command normalizes.
	Sources []parser.Source `yaml:"sources,omitempty"`

	// Strict rejects canonical versions that carry a fourth (revision) component.
	Strict bool `yaml:"strict,omitempty"`

	// Rules are extra policies every canonical version must satisfy.
	Rules []rules.Rule `yaml:"rules,omitempty"`

	// Theme selects the prompt theme.
	Theme string `yaml:"theme,omitempty"`

	// NoColor disables styled output.
	NoColor bool `yaml:"no-color,omitempty"`
}

// GetTheme returns the configured theme or DefaultTheme.
func (c *Config) GetTheme() string {
	if c.Theme == "" {
		return DefaultTheme
	}
	return c.Theme
}

// ResolvedSources returns Sources with format and field filled in from the
// file name where they were left out.
func (c *Config) ResolvedSources() []parser.Source {
	out := make([]parser.Source, len(c.Sources))
	for i, src := range c.Sources {
		out[i] = parser.DetectSource(src)
	}
	return out
}

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// ConfigSaver handles configuration saving with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

// NewConfigSaver creates a ConfigSaver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = commentedMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{
		marshaler:  marshaler,
		fileOpener: opener,
		fileWriter: writer,
	}
}

// SaveTo saves the configuration to the specified file path.
func (s *ConfigSaver) SaveTo(cfg *Config, configFile string) error {
	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	file, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}

var defaultConfigSaver = NewConfigSaver(nil, nil, nil)

// LoadConfigFn and SaveConfigFn can be overridden in tests.
var (
	LoadConfigFn = loadConfig
	SaveConfigFn = func(cfg *Config, path string) error {
		return defaultConfigSaver.SaveTo(cfg, path)
	}
)

// ResolvePath picks the config file location. The environment variable wins
// over the flag value, which wins over DefaultConfigFile.
func ResolvePath(flagPath string) (string, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		cleanPath := filepath.Clean(envPath)
		// Reject relative paths with traversal (use absolute paths instead)
		if !filepath.IsAbs(cleanPath) && strings.Contains(cleanPath, "..") {
			return "", fmt.Errorf("invalid %s: path traversal not allowed, use absolute path instead", EnvConfigPath)
		}
		return cleanPath, nil
	}
	if flagPath != "" {
		return flagPath, nil
	}
	return DefaultConfigFile, nil
}

// loadConfig reads the YAML config at path. A missing file yields an empty
// config; unknown keys are rejected.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		return &cfg, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	for i, src := range cfg.Sources {
		if src.Format != "" {
			cfg.Sources[i].Format = parser.ParseFormat(string(src.Format))
		}
	}

	return &cfg, nil
}
