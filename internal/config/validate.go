package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateConverter(); err != nil {
		return err
	}
	if err := c.validateDiscovery(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.NotebooksDir) == "" {
		return errors.New("paths.notebooks_dir must be set")
	}
	if strings.TrimSpace(c.Paths.ReportsDir) == "" {
		return errors.New("paths.reports_dir must be set")
	}
	if c.Paths.NotebooksDir == c.Paths.ReportsDir {
		return fmt.Errorf("paths.reports_dir must differ from paths.notebooks_dir (both %s)", c.Paths.ReportsDir)
	}
	return nil
}

func (c *Config) validateConverter() error {
	if strings.TrimSpace(c.Converter.Binary) == "" {
		return errors.New("converter.binary must be set")
	}
	if strings.TrimSpace(c.Converter.Format) == "" {
		return errors.New("converter.format must be set")
	}
	if c.Converter.TimeoutSeconds < 0 {
		return errors.New("converter.timeout_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateDiscovery() error {
	ext := c.Discovery.Extension
	if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("discovery.extension %q must look like \".ipynb\"", ext)
	}
	if strings.ContainsAny(ext, `/\`) {
		return fmt.Errorf("discovery.extension %q must not contain path separators", ext)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}
