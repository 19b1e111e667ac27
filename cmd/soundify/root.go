package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/soundify/internal/config"
	"github.com/ewilliams-labs/soundify/internal/logging"
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

// ensureConfig loads configuration once and applies its logging settings.
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
		logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
		c.config = cfg
	})
	return c.config, c.configErr
}

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "soundify",
		Short:         "LLM-backed music recommendation API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newPromptCommand())
	rootCmd.AddCommand(newRecommendCommand(ctx))
	rootCmd.AddCommand(newAuditCommand(ctx))

	return rootCmd
}
