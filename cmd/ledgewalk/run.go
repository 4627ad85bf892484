package main

import (
	"errors"

	"github.com/spf13/cobra"

	"chosenoffset.com/ledgewalk/internal/game"
	"chosenoffset.com/ledgewalk/internal/level"
	ebitenrender "chosenoffset.com/ledgewalk/internal/render/ebiten"
)

var flagNoEditor bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the game window",
	Long: `Open the game window and play the configured level.

Controls:
  Left/Right, A/D    - Move
  Up/W/Space         - Jump
  Mouse drag         - Draw a stroke; tiles under it turn solid on release
  Right click        - Cancel the stroke in progress
  E                  - Toggle the terrain editor
  R                  - Restart the level
  Esc                - Quit`,
	RunE: runGame,
}

func init() {
	runCmd.Flags().BoolVar(&flagNoEditor, "no-editor", false, "Start with the terrain editor off")
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagNoEditor {
		cfg.Editor.Enabled = false
	}
	logger := newLogger(cfg.Log.Level)

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	assembler := level.NewAssembler(cfg, nil, logger)
	manager := game.NewManager(cfg, assembler, renderer, inputMgr, logger)
	if err := manager.LoadLevel(); err != nil {
		return err
	}

	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)
	engine.SetTPS(cfg.Physics.TickRate)

	logger.Info("starting game", "level", cfg.Level.Path, "editor", cfg.Editor.Enabled)
	if err := engine.RunGame(manager); err != nil && !errors.Is(err, game.ErrQuit) {
		return err
	}
	return nil
}
