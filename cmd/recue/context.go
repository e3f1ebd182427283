package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"recue/internal/config"
	"recue/internal/formats"
	"recue/internal/history"
	"recue/internal/logging"
	"recue/internal/subtitle"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
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
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil
	}
	return history.Open(cfg.History.Path)
}

// recordHistory appends a history row for a completed operation. History
// failures are logged, never surfaced: a missing database must not fail a
// conversion that already wrote its output.
func (c *commandContext) recordHistory(cmd *cobra.Command, command, source, output string, subs *subtitle.Subtitles) {
	store, err := c.openHistory()
	if err != nil {
		c.loggerValue().Warn("history unavailable", "error", err)
		return
	}
	if store == nil {
		return
	}
	defer store.Close()

	format, _ := formats.Detect(output)
	record := history.Record{
		Command:  command,
		Source:   source,
		Output:   output,
		Format:   format,
		Cues:     len(subs.Items),
		Duration: subs.Duration(),
	}
	if err := store.Add(cmd.Context(), record); err != nil {
		c.loggerValue().Warn("record history", "error", err)
	}
}

// runTransform is the shared read, mutate, write pipeline behind every
// timeline command.
func (c *commandContext) runTransform(cmd *cobra.Command, name, input, output string, fn func(*subtitle.Subtitles) error) error {
	if strings.TrimSpace(output) == "" {
		output = input
	}
	started := time.Now()

	subs, err := formats.Open(input)
	if err != nil {
		return err
	}
	if err := fn(subs); err != nil {
		return err
	}
	if err := formats.Save(output, subs); err != nil {
		return err
	}

	c.loggerValue().Info("transform complete",
		slog.Group(name,
			"source", input,
			"output", output,
			"cues", len(subs.Items),
			"elapsed", time.Since(started).Round(time.Millisecond).String(),
		))
	c.recordHistory(cmd, name, input, output, subs)

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cues to %s\n", len(subs.Items), output)
	return nil
}
