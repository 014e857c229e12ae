package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/wordguard/internal/output"
	"github.com/fenilsonani/wordguard/internal/platform"
	"github.com/fenilsonani/wordguard/internal/reporter"
	"github.com/fenilsonani/wordguard/internal/security"
	"github.com/fenilsonani/wordguard/internal/words"
)

// Config represents the application configuration
type Config struct {
	Roots             []string `yaml:"roots"`
	OutputDir         string   `yaml:"output_dir"`
	WordsFile         string   `yaml:"words_file"`
	Words             []string `yaml:"words"`
	ExcludePattern    []string `yaml:"exclude_patterns"`
	SkipDirs          []string `yaml:"skip_dirs"`
	MaxFileSize       string   `yaml:"max_file_size"`       // e.g. "64MB", empty for no limit
	Workers           int      `yaml:"workers"`             // roots walked at once
	PausePollInterval string   `yaml:"pause_poll_interval"` // e.g. "100ms"
	CollisionPolicy   string   `yaml:"collision_policy"`    // "overwrite" or "keep_both"
	LogLevel          string   `yaml:"log_level"`
	LogFile           string   `yaml:"log_file"`
	ReportFormat      string   `yaml:"report_format"` // terminal summary: text, json, yaml, table
}

// Load loads configuration from a file
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Fields missing from the file keep their defaults
	config := GetDefault()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}

	if _, err := ParseSize(c.MaxFileSize); err != nil {
		return fmt.Errorf("invalid max file size: %w", err)
	}

	if c.PausePollInterval != "" {
		d, err := time.ParseDuration(c.PausePollInterval)
		if err != nil {
			return fmt.Errorf("invalid pause poll interval: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("pause poll interval must be > 0")
		}
	}

	if c.CollisionPolicy != "" && !output.CollisionPolicy(c.CollisionPolicy).Valid() {
		return fmt.Errorf("unknown collision policy: %s", c.CollisionPolicy)
	}

	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}

	if _, err := reporter.ParseFormat(c.ReportFormat); err != nil {
		return fmt.Errorf("invalid report format: %w", err)
	}

	// Validate exclude patterns (glob syntax)
	for _, pattern := range c.ExcludePattern {
		if err := security.ValidateGlobPattern(pattern); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}

	for _, w := range c.Words {
		if strings.ContainsRune(w, words.MaskRune) {
			return fmt.Errorf("invalid word %q: %w", w, words.ErrMaskRune)
		}
	}

	home, _ := os.UserHomeDir()
	for _, path := range c.SkipDirs {
		if !filepath.IsAbs(ExpandPath(path, home)) {
			return fmt.Errorf("skip dir must be absolute: %s", path)
		}
	}
	for _, path := range c.Roots {
		if !filepath.IsAbs(ExpandPath(path, home)) {
			return fmt.Errorf("root must be absolute: %s", path)
		}
	}

	return nil
}

// MaxFileSizeBytes returns the size limit in bytes, 0 for none
func (c *Config) MaxFileSizeBytes() int64 {
	n, _ := ParseSize(c.MaxFileSize)
	return n
}

// PollInterval returns the pause poll interval, 0 for the walker default
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.PausePollInterval)
	if err != nil {
		return 0
	}
	return d
}

// LoadWords combines the words file and the inline words, file first.
func (c *Config) LoadWords() (words.Set, error) {
	set, err := words.New(c.Words...)
	if err != nil {
		return words.Set{}, err
	}

	if c.WordsFile == "" {
		return set, nil
	}

	home, _ := os.UserHomeDir()
	fromFile, err := words.Load(ExpandPath(c.WordsFile, home))
	if err != nil {
		return words.Set{}, err
	}
	return fromFile.Merge(set), nil
}

// ResolveOutputDir returns the configured output directory, or the platform
// default when none is set
func (c *Config) ResolveOutputDir() (string, error) {
	if c.OutputDir == "" {
		return platform.DefaultOutputDir()
	}
	home, _ := os.UserHomeDir()
	return filepath.Abs(ExpandPath(c.OutputDir, home))
}

// ResolveSkipDirs returns the skip dirs with ~ expanded
func (c *Config) ResolveSkipDirs() []string {
	home, _ := os.UserHomeDir()
	dirs := make([]string, 0, len(c.SkipDirs))
	for _, d := range c.SkipDirs {
		dirs = append(dirs, ExpandPath(d, home))
	}
	return dirs
}

// ResolveRoots returns the configured roots with ~ expanded
func (c *Config) ResolveRoots() []string {
	home, _ := os.UserHomeDir()
	roots := make([]string, 0, len(c.Roots))
	for _, r := range c.Roots {
		roots = append(roots, ExpandPath(r, home))
	}
	return roots
}

// ExpandPath replaces a leading ~ with home
func ExpandPath(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	if info, err := platform.GetInfo(); err == nil {
		return filepath.Join(info.ConfigDir, "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", platform.AppName)
	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists creates a default config file if it doesn't exist
func EnsureConfigExists() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(GetDefault(), configPath); err != nil {
			return "", err
		}
	}

	return configPath, nil
}
