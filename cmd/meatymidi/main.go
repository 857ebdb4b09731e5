package main

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/meaty/meatymidi/internal/config"
	"github.com/meaty/meatymidi/internal/geom"
	"github.com/meaty/meatymidi/internal/layout"
	"github.com/meaty/meatymidi/internal/logging"
	"github.com/meaty/meatymidi/internal/render"
	"github.com/meaty/meatymidi/internal/window"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	desc, err := loadLayout(cfg.Layout.Path)
	if err != nil {
		logger.Fatal("load layout", zap.String("path", cfg.Layout.Path), zap.Error(err))
	}
	root, err := layout.NewBuilder(logger).Build(desc)
	if err != nil {
		logger.Fatal("build layout", zap.Error(err))
	}

	bg, err := render.ParseColor(cfg.Window.Background)
	if err != nil {
		logger.Fatal("window background", zap.Error(err))
	}
	w, err := window.New(root, window.Options{
		Title:      cfg.Window.Title,
		Size:       geom.Size{W: float64(cfg.Window.Width), H: float64(cfg.Window.Height)},
		Scale:      render.Scale{CellW: float64(cfg.Window.CellWidth), CellH: float64(cfg.Window.CellHeight)},
		Background: bg,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("open window", zap.Error(err))
	}

	p := tea.NewProgram(w, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		logger.Error("program", zap.Error(err))
	}
	logger.Info("exit", zap.Int("frames", w.Frames()), zap.Int("events", w.Events()))
	_ = logger.Sync()
	os.Exit(0)
}

func loadLayout(path string) (*layout.Description, error) {
	if path == "" {
		return layout.Default()
	}
	return layout.Load(path)
}
