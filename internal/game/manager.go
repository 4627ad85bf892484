package game

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"

	"chosenoffset.com/ledgewalk/internal/config"
	"chosenoffset.com/ledgewalk/internal/level"
	"chosenoffset.com/ledgewalk/internal/render"
)

// ErrQuit is returned from Update when the player asks to leave.
var ErrQuit = errors.New("game: quit")

// State is the manager's top-level state.
type State int

const (
	StatePlaying State = iota
	StateFailed        // Level failed to load; waiting for a retry
)

// Manager owns the current Game and rebuilds it on restart.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        State
	Game         *Game
	LoadErr      error

	cfg       config.Config
	assembler *level.Assembler
	Renderer  render.Renderer
	InputMgr  render.InputManager
	Logger    *log.Logger
}

// NewManager creates a new game manager.
func NewManager(cfg config.Config, assembler *level.Assembler, r render.Renderer, input render.InputManager, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
		cfg:          cfg,
		assembler:    assembler,
		Renderer:     r,
		InputMgr:     input,
		Logger:       logger,
	}
}

// LoadLevel assembles the configured level and starts a fresh game on it.
func (m *Manager) LoadLevel() error {
	lvl, err := m.assembler.Load(m.cfg.Level.Path)
	if err != nil {
		m.State, m.LoadErr = StateFailed, err
		return fmt.Errorf("failed to load level: %w", err)
	}

	g, err := New(m.cfg, lvl, m.Renderer, m.InputMgr, m.Logger)
	if err != nil {
		m.State, m.LoadErr = StateFailed, err
		return err
	}
	g.ScreenWidth, g.ScreenHeight = m.ScreenWidth, m.ScreenHeight
	g.UpdateCamera()

	m.Game, m.State, m.LoadErr = g, StatePlaying, nil
	return nil
}

// Update updates the game state.
func (m *Manager) Update() error {
	if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return ErrQuit
	}
	if m.InputMgr.IsKeyJustPressed(render.KeyR) {
		m.Logger.Info("restarting level", "path", m.cfg.Level.Path)
		if err := m.LoadLevel(); err != nil {
			m.Logger.Error("restart failed", "err", err)
		}
		return nil
	}

	if m.State == StatePlaying && m.Game != nil {
		return m.Game.Update()
	}
	return nil
}

// Draw draws the current state.
func (m *Manager) Draw(screen render.Image) {
	switch m.State {
	case StatePlaying:
		if m.Game != nil {
			m.Game.Draw(screen)
		}
	case StateFailed:
		screen.Fill(color.RGBA{40, 20, 20, 255})
		m.Renderer.DrawText(screen, "Level failed to load (R to retry, ESC to quit)", 40, 40)
		if m.LoadErr != nil {
			m.Renderer.DrawText(screen, m.LoadErr.Error(), 40, 64)
		}
	}
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		if m.Game != nil {
			m.Game.ScreenWidth = outsideWidth
			m.Game.ScreenHeight = outsideHeight
			m.Game.UpdateCamera()
		}
	}
	return outsideWidth, outsideHeight
}
