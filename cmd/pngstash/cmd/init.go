/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/pngstash/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a pngstash config file",
	Long: `Create a config file with default settings and a generated API key.

This command will:
- Write the config file (default ~/.config/pngstash/config.yaml)
- Generate the API key used by 'pngstash serve'

Examples:
  pngstash init
  pngstash init --config ./pngstash.yaml --data-dir ./data`,
	Args: cobra.NoArgs,
	// The config file does not exist yet
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		out := cmd.OutOrStdout()
		if config.ConfigExists(configPath) && !force {
			fmt.Fprintf(out, "Config already exists at %s. Use --force to overwrite.\n", configPath)
			return nil
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "✅ pngstash config written to %s\n", configPath)
		fmt.Fprintf(out, "Data directory: %s\n", cfg.DataDir)
		fmt.Fprintf(out, "API key: %s\n", cfg.Server.APIKey)
		fmt.Fprintf(out, "\nYou can now start the server with:\n")
		fmt.Fprintf(out, "  pngstash serve --config %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("data-dir", "", "Data directory for the journal (default ./data)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}
