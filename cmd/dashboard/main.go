package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rockalpatio/internal/config"
	pkgconfig "rockalpatio/pkg/config"
	"rockalpatio/pkg/logger"
)

var version = "dev"

var (
	configDir string
	configEnv string

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Rock al Patio team dashboard",
	Long: `Internal dashboard for the Rock al Patio team: tasks board,
objectives by area and the client pipeline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configEnv, configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log = logger.NewLogger(cfg.Log.Level, cfg.Log.Format)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "config", "Directory with base.yaml and <env>.yaml")
	rootCmd.PersistentFlags().StringVar(&configEnv, "env", pkgconfig.GetConfigEnv(), "Config environment (CONFIG_ENV)")

	userCmd.AddCommand(userAddCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
