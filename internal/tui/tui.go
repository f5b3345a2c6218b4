// Package tui renders the bubble canvas and drives the layout engine
// using bubbletea.
package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/bubble/internal/config"
	"github.com/npratt/bubble/internal/store"
)

// TUI is the interactive bubble canvas.
type TUI struct {
	cfg    *config.Config
	store  *store.Store
	logger *slog.Logger
}

// New creates a TUI backed by the given store.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) *TUI {
	return &TUI{cfg: cfg, store: st, logger: logger}
}

// Run starts the TUI and blocks until it exits.
func (t *TUI) Run() error {
	m := newModel(t.cfg, t.store, t.logger)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
