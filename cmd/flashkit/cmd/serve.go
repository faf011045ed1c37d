/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/ssargent/flashkit/pkg/api"
	"github.com/ssargent/flashkit/pkg/inspect"
	"github.com/ssargent/flashkit/pkg/storage"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the flashkit REST API server. Containers posted to the API are
inspected or stored in the asset store under the configured data directory.

Examples:
  flashkit serve
  flashkit serve --port=9200 --api-key=mysecretkey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := fromContext(cmd.Context())

		if cmd.Flags().Changed("port") {
			a.config.Port, _ = cmd.Flags().GetInt("port")
		}
		if key, _ := cmd.Flags().GetString("api-key"); key != "" {
			a.config.Security.APIKey = key
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, a)
	},
}

// runServe opens the asset store and serves the API until ctx is done
func runServe(ctx context.Context, a *app) error {
	cfg := a.config
	if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
		return errors.New("an API key is required, run 'flashkit init' or pass --api-key")
	}

	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return errors.Wrap(err, "failed to create data directory")
	}
	assets, err := storage.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer assets.Close()
	assets.Inspector = inspect.Inspector{MaxLength: cfg.Security.MaxDecodedSize}

	return api.StartServer(ctx, assets, api.ServerConfig{
		Bind:           cfg.Bind,
		Port:           cfg.Port,
		APIKey:         cfg.Security.APIKey,
		MaxUploadSize:  cfg.Security.MaxUploadSize,
		MaxDecodedSize: cfg.Security.MaxDecodedSize,
		Logger:         a.logger,
	})
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("api-key", "", "API key required in the X-API-Key header")
}
