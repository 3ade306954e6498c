package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"recipesaver/internal/config"
	"recipesaver/internal/enrich"
	"recipesaver/internal/library"
	"recipesaver/internal/logging"
	"recipesaver/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newCLILogger builds a logger writing only to the log file. Command output
// on stdout and stderr stays reserved for user-facing text.
func (c *commandContext) newCLILogger(cfg *config.Config, component string) (*slog.Logger, error) {
	if cfg == nil || cfg.Paths.LogDir == "" {
		return logging.NewNop(), nil
	}
	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, "recipesaver.log")},
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if component != "" {
		logger = logging.NewComponentLogger(logger, component)
	}
	return logger, nil
}

// withRepository opens the collection for the duration of fn, holding the
// data directory lock so concurrent invocations do not interleave writes.
func (c *commandContext) withRepository(cmd *cobra.Command, fn func(*library.Repository) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.newCLILogger(cfg, "cli")
	if err != nil {
		return err
	}

	st, err := store.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	repo, err := library.Open(cmd.Context(), cfg, st, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	return fn(repo)
}

func (c *commandContext) newEnrichService() (*enrich.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.newCLILogger(cfg, "enrich")
	if err != nil {
		return nil, err
	}
	return enrich.NewService(cfg, logger), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
