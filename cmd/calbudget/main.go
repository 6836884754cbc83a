package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jask/calbudget/internal/config"
	"github.com/jask/calbudget/internal/database"
	"github.com/jask/calbudget/internal/database/repository"
	"github.com/jask/calbudget/internal/logging"
	"github.com/jask/calbudget/internal/service"
	"github.com/jask/calbudget/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "calbudget: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, logFile, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer logFile.Close()

	loc, err := cfg.Location()
	if err != nil {
		logger.WithError(err).Warn("using local timezone")
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	entries := repository.NewEntryRepo(db)
	defer entries.Close()

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	version, _, err := database.SchemaVersion(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("schema version: %w", err)
	}
	count, err := entries.Count(ctx)
	if err != nil {
		return fmt.Errorf("count entries: %w", err)
	}
	logger.WithField("db", cfg.Database.Path).
		WithField("schema_version", version).
		WithField("entries", count).
		Info("calbudget starting")

	app := tui.New(ctx, cfg,
		tui.Repos{Entries: entries},
		tui.Services{Entries: &service.EntryService{Entries: entries, Log: logger}},
		logger, loc,
	)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		logger.WithError(err).Error("program exited with error")
		return err
	}
	logger.Info("calbudget stopped")
	return nil
}
