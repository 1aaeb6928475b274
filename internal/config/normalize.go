package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeConverter()
	c.normalizeDiscovery()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.ProjectRoot = strings.TrimSpace(c.Paths.ProjectRoot)
	if c.Paths.ProjectRoot == "" {
		if value, ok := os.LookupEnv(envProjectRoot); ok && strings.TrimSpace(value) != "" {
			c.Paths.ProjectRoot = strings.TrimSpace(value)
		} else {
			c.Paths.ProjectRoot = defaultProjectRoot
		}
	}
	if c.Paths.ProjectRoot, err = expandPath(c.Paths.ProjectRoot); err != nil {
		return fmt.Errorf("paths.project_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.NotebooksDir) == "" {
		c.Paths.NotebooksDir = defaultNotebooksDir
	}
	if c.Paths.NotebooksDir, err = resolveUnder(c.Paths.ProjectRoot, c.Paths.NotebooksDir); err != nil {
		return fmt.Errorf("paths.notebooks_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ReportsDir) == "" {
		c.Paths.ReportsDir = defaultReportsDir
	}
	if c.Paths.ReportsDir, err = resolveUnder(c.Paths.ProjectRoot, c.Paths.ReportsDir); err != nil {
		return fmt.Errorf("paths.reports_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeConverter() {
	c.Converter.Binary = strings.TrimSpace(c.Converter.Binary)
	if c.Converter.Binary == "" {
		if value, ok := os.LookupEnv(envConverterBinary); ok {
			c.Converter.Binary = strings.TrimSpace(value)
		}
	}
	if c.Converter.Binary == "" {
		c.Converter.Binary = defaultConverterBinary
	}
	// An empty subcommand is allowed for converters invoked directly
	// (e.g. binary = "jupyter-nbconvert").
	c.Converter.Subcommand = strings.TrimSpace(c.Converter.Subcommand)
	c.Converter.Format = strings.ToLower(strings.TrimSpace(c.Converter.Format))
	if c.Converter.Format == "" {
		c.Converter.Format = defaultConverterFormat
	}
	if len(c.Converter.ExtraArgs) > 0 {
		args := make([]string, 0, len(c.Converter.ExtraArgs))
		for _, arg := range c.Converter.ExtraArgs {
			if trimmed := strings.TrimSpace(arg); trimmed != "" {
				args = append(args, trimmed)
			}
		}
		c.Converter.ExtraArgs = args
	}
}

func (c *Config) normalizeDiscovery() {
	c.Discovery.Extension = strings.TrimSpace(c.Discovery.Extension)
	if c.Discovery.Extension == "" {
		c.Discovery.Extension = defaultNotebookExtension
	}
	if !strings.HasPrefix(c.Discovery.Extension, ".") {
		c.Discovery.Extension = "." + c.Discovery.Extension
	}
	dirs := make([]string, 0, len(c.Discovery.ExcludeDirs))
	seen := make(map[string]struct{}, len(c.Discovery.ExcludeDirs))
	for _, dir := range c.Discovery.ExcludeDirs {
		name := strings.Trim(strings.TrimSpace(dir), `/\`)
		if name == "" {
			continue
		}
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		dirs = append(dirs, name)
	}
	c.Discovery.ExcludeDirs = dirs
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		var err error
		if c.Logging.File, err = resolveUnder(c.Paths.ProjectRoot, c.Logging.File); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}
