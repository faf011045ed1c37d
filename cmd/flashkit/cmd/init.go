/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/ssargent/flashkit/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file",
	Long: `Create a configuration file with default settings and a generated API key.

Examples:
  flashkit init
  flashkit init --data-dir=/var/lib/flashkit --config=./flashkit.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")
		return runInit(cmd.OutOrStdout(), configPath, dataDir, force)
	},
}

func runInit(w io.Writer, configPath, dataDir string, force bool) error {
	if config.ConfigExists(configPath) && !force {
		return errors.Newf("config already exists at %s, use --force to overwrite", configPath)
	}

	cfg, err := config.BootstrapConfig(configPath, dataDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return errors.Wrap(err, "failed to create data directory")
	}

	printf(w, "Configuration written to %s\n", configPath)
	printf(w, "Data directory: %s\n", cfg.DataDir)
	printf(w, "API key: %s...\n", cfg.Security.APIKey[:8])
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringP("data-dir", "d", "", "Data directory for the asset store")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}
