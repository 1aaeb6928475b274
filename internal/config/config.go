package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the project, notebooks, and reports directories.
type Paths struct {
	ProjectRoot  string `toml:"project_root"`
	NotebooksDir string `toml:"notebooks_dir"`
	ReportsDir   string `toml:"reports_dir"`
}

// Converter describes how the external notebook converter is invoked.
type Converter struct {
	Binary         string   `toml:"binary"`
	Subcommand     string   `toml:"subcommand"`
	Format         string   `toml:"format"`
	ExtraArgs      []string `toml:"extra_args"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// Discovery controls which files under the notebooks directory are exported.
type Discovery struct {
	Extension   string   `toml:"extension"`
	ExcludeDirs []string `toml:"exclude_dirs"`
	Sort        bool     `toml:"sort"`
}

// Logging contains configuration for diagnostic log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for nbexport.
//
// Configuration sections:
//   - Paths: project root plus the notebooks (source) and reports (output) roots
//   - Converter: external conversion tool invocation
//   - Discovery: notebook extension and excluded directory names
//   - Logging: log format, level, and optional log file
type Config struct {
	Paths     Paths     `toml:"paths"`
	Converter Converter `toml:"converter"`
	Discovery Discovery `toml:"discovery"`
	Logging   Logging   `toml:"logging"`
}

// Override adjusts a decoded configuration before normalization. Command-line
// flags use overrides so their values go through the same path rules as file
// values.
type Override func(*Config)

// WithProjectRoot replaces paths.project_root when root is non-empty.
func WithProjectRoot(root string) Override {
	return func(c *Config) {
		if strings.TrimSpace(root) != "" {
			c.Paths.ProjectRoot = root
		}
	}
}

// WithLogLevel replaces logging.level when level is non-empty.
func WithLogLevel(level string) Override {
	return func(c *Config) {
		if strings.TrimSpace(level) != "" {
			c.Logging.Level = level
		}
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string, overrides ...Override) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	for _, override := range overrides {
		if override != nil {
			override(&cfg)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Timeout returns the per-notebook converter timeout. Zero means the
// converter may run indefinitely.
func (c Converter) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LockPath returns the advisory lock file guarding the reports directory. It
// sits next to the reports directory so the mirrored tree stays untouched.
func (c *Config) LockPath() string {
	reports := filepath.Clean(c.Paths.ReportsDir)
	return filepath.Join(filepath.Dir(reports), "."+filepath.Base(reports)+".lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// resolveUnder expands pathValue, treating relative values as relative to base.
func resolveUnder(base, pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" || strings.HasPrefix(pathValue, "~") || filepath.IsAbs(pathValue) {
		return expandPath(pathValue)
	}
	return expandPath(filepath.Join(base, pathValue))
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
