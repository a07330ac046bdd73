package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suryansh-23/subspot/internal/config"
	"github.com/suryansh-23/subspot/internal/logging"
	"github.com/suryansh-23/subspot/internal/types"
)

func newRootCmd(state *appState) *cobra.Command {
	var (
		cfgPath   string
		debugFlag bool
		logFormat string
	)

	rootCmd := &cobra.Command{
		Use:           "subspot",
		Short:         "Find spoken lines that spell a pattern and spotlight it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolvedPath, err := resolveConfigPath(cfgPath)
			if err != nil {
				return err
			}
			cfg, found, err := config.Load(resolvedPath)
			if err != nil {
				return err
			}
			applyOverrides(&cfg, logFormat)
			logger, err := logging.FromConfig(cfg, debugFlag, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			state.cfg = cfg
			state.cfgFound = found
			state.cache = ensureCache(state.cache, cfg)
			state.logger = logger
			state.cfgPath = resolvedPath
			logger.Debug("config loaded", "path", resolvedPath, "found", found)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console|json)")

	rootCmd.AddCommand(newSearchCmd(state))
	rootCmd.AddCommand(newExploreCmd(state))
	rootCmd.AddCommand(newInitCmd(&cfgPath))
	rootCmd.AddCommand(newDoctorCmd(state))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func applyOverrides(cfg *config.Config, logFormat string) {
	if logFormat != "" {
		cfg.Log.Format = types.LogFormat(logFormat)
	}
}

func printFileError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "subspot: %v\n", err)
}
