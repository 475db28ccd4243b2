/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/pngstash/pkg/config"
	"github.com/ssargent/pngstash/pkg/di"
	"github.com/ssargent/pngstash/pkg/logging"
)

var container *di.Container

// active is the state of the running invocation, closed by closeActive
// whether or not the command succeeded.
var active *app

// SetContainer injects the dependency container
func SetContainer(c *di.Container) {
	container = c
}

func getContainer() *di.Container {
	if container == nil {
		container = di.NewContainer()
	}
	return container
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pngstash",
	Short: "pngstash - hide messages inside PNG files",
	Long: `pngstash hides, reads and removes text messages stored as ancillary
chunks inside PNG files. The image itself is left untouched.

Examples:
  pngstash encode -f dice.png -c ruSt -m "a secret" -o out.png
  pngstash decode -f out.png -c ruSt
  pngstash remove -f out.png -c ruSt
  pngstash print -f out.png`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg, err := resolveConfig(configPath)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err := logging.New(level)
		if err != nil {
			return err
		}
		logging.SetLogger(logger)

		// Store in command context
		active = &app{cfg: cfg, opener: getContainer().GetJournalOpener()}
		cmd.SetContext(withApp(cmd.Context(), active))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = logging.Logger().Sync()
		if a := appFrom(cmd); a != nil {
			return a.close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func closeActive() {
	if active == nil {
		return
	}
	if err := active.close(); err != nil {
		logging.Logger().Warn("failed to close journal", zap.Error(err))
	}
	active = nil
}

// resolveConfig loads the named config file, the default config file when it
// exists, or the built-in defaults.
func resolveConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	defaultPath := config.GetDefaultConfigPath()
	if config.ConfigExists(defaultPath) {
		cfg, err := config.LoadConfig(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	return config.DefaultConfig(), nil
}

func init() {
	cobra.OnFinalize(closeActive)

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ~/.config/pngstash/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
