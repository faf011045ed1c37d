/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/ssargent/flashkit/pkg/config"
)

type appKey struct{}

// app is the state shared by every subcommand
type app struct {
	config *config.Config
	logger *slog.Logger
}

func fromContext(ctx context.Context) *app {
	if a, ok := ctx.Value(appKey{}).(*app); ok {
		return a
	}
	return &app{config: config.DefaultConfig(), logger: slog.Default()}
}

// loadApp reads the config file when it exists and builds the logger
func loadApp(configPath, levelOverride string) (*app, error) {
	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if levelOverride != "" {
		cfg.Logging.Level = levelOverride
	}

	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return &app{config: cfg, logger: logger}, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flashkit",
	Short: "flashkit - movie and video container tools",
	Long: `flashkit inspects, re-encodes and builds tag-structured movie (FWS/CWS)
and streaming video (FLV) containers, and serves them over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		level, _ := cmd.Flags().GetString("log-level")

		a, err := loadApp(configPath, level)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}
		cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", config.GetDefaultConfigPath(), "Path to the configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Logging level (debug, info, warn, error)")
}
