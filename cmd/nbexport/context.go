package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"nbexport/internal/config"
	"nbexport/internal/logging"
)

type commandContext struct {
	configFlag      *string
	projectRootFlag *string
	logLevelFlag    *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, projectRootFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:      configFlag,
		projectRootFlag: projectRootFlag,
		logLevelFlag:    logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(flagValue(c.configFlag), c.overrides()...)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) overrides() []config.Override {
	return []config.Override{
		config.WithProjectRoot(flagValue(c.projectRootFlag)),
		config.WithLogLevel(flagValue(c.logLevelFlag)),
	}
}

// newLogger builds the run logger and tags ctx with a fresh run identifier.
// Components attach the identifier through logging.WithContext. The returned
// function closes the configured log file.
func (c *commandContext) newLogger(ctx context.Context, stderr io.Writer) (context.Context, *slog.Logger, func() error, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return ctx, nil, nil, err
	}
	logger, closeLog, err := logging.NewFromConfig(cfg, stderr)
	if err != nil {
		return ctx, nil, nil, err
	}
	ctx = logging.WithRunID(ctx, uuid.NewString())
	return ctx, logger, closeLog, nil
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}
