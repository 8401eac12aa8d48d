package cli

import (
	"fmt"

	"github.com/containerd/log"
	"github.com/kolah/oacollect/internal/config"
	"github.com/spf13/cobra"
)

// setupLogging points the global logger at the command's stderr with the
// configured level and format.
func setupLogging(cmd *cobra.Command, cfg *config.Config) error {
	log.L.Logger.SetOutput(cmd.ErrOrStderr())

	if cfg.Log.Level != "" {
		if err := log.SetLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("setting log level: %w", err)
		}
	}

	format := log.TextFormat
	if cfg.Log.Format == "json" {
		format = log.JSONFormat
	}
	if err := log.SetFormat(format); err != nil {
		return fmt.Errorf("setting log format: %w", err)
	}
	return nil
}

// prepare loads the configuration for cmd and configures logging from it.
func prepare(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(cmd, args)
	if err != nil {
		return nil, err
	}
	if err := setupLogging(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
