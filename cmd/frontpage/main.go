package main

import (
	"log"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/frontpage/internal/app"
	"github.com/glabrego/frontpage/internal/config"
	"github.com/glabrego/frontpage/internal/debuglog"
	"github.com/glabrego/frontpage/internal/hnsearch"
	"github.com/glabrego/frontpage/internal/tui"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if err := debuglog.Setup(debuglog.ParseLevel(cfg.LogLevel), cfg.LogPath); err != nil {
		log.Fatalf("log setup error: %v", err)
	}
	defer func() {
		_ = debuglog.Close()
	}()

	client := hnsearch.NewClient(cfg.APIBaseURL, cfg.HitsPerPage, &http.Client{Timeout: cfg.HTTPTimeout})
	service := app.NewService(client)
	model := tui.NewModel(service, cfg.HTTPTimeout)

	// Mouse tracking backs the press-outside-sidebar close and is released
	// together with the program.
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		log.Fatalf("tui error: %v", err)
	}
}
