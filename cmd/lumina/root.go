package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/vytor/lumina/internal/config"
	"github.com/vytor/lumina/internal/db"
	"github.com/vytor/lumina/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:          "lumina",
	Short:        "Study timer and spaced-repetition flashcards",
	Long:         "Lumina records focused study sessions, turns notes into flashcards and schedules their review.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DB_PATH env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: DEBUG, INFO, WARN or ERROR (overrides LOG_LEVEL env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(migrateCmd)
}

// loadConfig reads the environment, applies command-line overrides and
// installs the default logger.
func loadConfig(cmd *cobra.Command) (config.Config, *logger.Logger, error) {
	cfg := config.Load()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
		logger.WithColors(cfg.LogFormat == "text"),
		logger.WithOutput(cmd.ErrOrStderr()),
	)
	logger.SetDefault(log)
	return cfg, log, nil
}

func openDB(ctx context.Context, log *logger.Logger, cfg config.Config) (*db.DB, error) {
	return db.Open(logger.NewContext(ctx, log), cfg.DBPath)
}
