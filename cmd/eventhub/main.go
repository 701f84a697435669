package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/JuanGabriel-Garcia/eventhub/internal/api"
	"github.com/JuanGabriel-Garcia/eventhub/internal/config"
	"github.com/JuanGabriel-Garcia/eventhub/internal/resolver"
	"github.com/JuanGabriel-Garcia/eventhub/internal/session"
	"github.com/JuanGabriel-Garcia/eventhub/internal/ui"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not set up logging:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store := session.NewStore(filepath.Join(cfg.StateDir, "session.json"), logger)
	if err := store.Load(); err != nil {
		// A corrupt session file should not brick the app; start logged out.
		logger.Warn("could not load session, starting fresh", zap.Error(err))
		_ = store.Clear()
	}

	client := api.NewClient(cfg.APIBaseURL, store, logger)
	names := resolver.New(client, logger)

	app := ui.New(client, store, names, logger)
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		logger.Error("program exited with error", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newLogger writes structured logs to a file; stdout is owned by the TUI.
func newLogger(path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
