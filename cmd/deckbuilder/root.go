package main

import (
	"github.com/spf13/cobra"

	"deckbuilder/internal/config"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var logFileFlag string

	rootCmd := &cobra.Command{
		Use:           "deckbuilder",
		Short:         "MTG collection enrichment and deck-building toolkit",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Also write logs to this file")

	ctx := &commandContext{
		configFlag:   &configFlag,
		logLevelFlag: &logLevelFlag,
		logFileFlag:  &logFileFlag,
	}

	rootCmd.AddCommand(newEnrichCommand(ctx))
	rootCmd.AddCommand(newFilterCommand(ctx))
	rootCmd.AddCommand(newStatsCommand(ctx))
	rootCmd.AddCommand(newSuggestCommand(ctx))
	rootCmd.AddCommand(newSynergiesCommand(ctx))
	rootCmd.AddCommand(newAnalyzeCommand(ctx))

	return rootCmd
}

// commandContext carries the persistent flag values into subcommands.
type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	logFileFlag  *string
}

// loadConfig resolves the effective configuration for a command: defaults,
// then the config file, then any persistent flags the user set.
func (c *commandContext) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return config.Config{}, err
	}
	fl := cmd.Flags()
	if fl.Changed("log-level") {
		cfg.LogLevel = *c.logLevelFlag
	}
	if fl.Changed("log-file") {
		cfg.LogFile = *c.logFileFlag
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
