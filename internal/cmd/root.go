package cmd

import (
	"context"

	"github.com/brandbridge/bridgeboard/internal/config"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "bridgeboard",
	Short: "Brand style guide service",
	Long: `Bridgeboard serves the bridge API: user-owned style guides holding
colors, icons, fonts and images.`,
	SilenceUsage: true,
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default is $BRIDGEBOARD_CONFIG or ./config.yaml)")
}

func appConfig() config.AppConfig {
	return config.AppConfig{ConfigPath: configPath}
}
