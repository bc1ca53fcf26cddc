package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrklmrrr/TODOIST/internal/config"
	"github.com/mrklmrrr/TODOIST/internal/logging"
	"github.com/mrklmrrr/TODOIST/internal/tasklist"
	"github.com/mrklmrrr/TODOIST/internal/tui"
)

func main() {
	cfgPath := flag.String("config", "todoist.yml", "path to YAML config (optional)")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintln(os.Stderr, "todoist-tui:", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The terminal belongs to the UI; logs only go to the configured file.
	logger, closer, err := logging.NewFileOnly(cfg.Log, "todoist-tui")
	if err != nil {
		return err
	}
	defer closer.Close()

	store := cfg.NewStore(tasklist.DefaultEnv(), logger)

	logger.Info("tui_started")
	defer logger.Info("tui_stopped")

	return tui.Run(store, tui.Options{
		Title:         cfg.UI.Title,
		GenerateCount: cfg.UI.GenerateCount,
		TimeFormat:    cfg.UI.TimeFormat,
	})
}
