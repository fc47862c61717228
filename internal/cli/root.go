// Package cli implements the nuggetube commands: the HTTP server and offline helpers for the
// chicken expert and the drawing classifier.
package cli

import (
	"github.com/spf13/cobra"

	"nuggetube-backend/internal/config"
	"nuggetube-backend/pkg/logger"
)

var (
	configPath string
	formatFlag string

	cfg *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:           "nuggetube",
	Short:         "NuggetTube backend",
	Long:          "Chicken expert chat, drawing analysis, flock counters and the map, served over HTTP and MCP.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return logger.Init(cfg.Log.Level, cfg.Log.Format)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./configs/config.yaml", "Config file path")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
}
