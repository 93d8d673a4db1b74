package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/abelbrown/scour/internal/config"
	"github.com/abelbrown/scour/internal/history"
)

// loadConfig reads the config (with .env and environment overrides) or fatals.
func loadConfig(path string) *config.Config {
	_ = godotenv.Load()
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// openHistory opens the history database or fatals.
func openHistory(cfg *config.Config) *history.Store {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}
	st, err := history.Open(cfg.HistoryPath())
	if err != nil {
		log.Fatalf("failed to open history: %v", err)
	}
	return st
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
