package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"chosenoffset.com/ledgewalk/internal/config"
	"chosenoffset.com/ledgewalk/internal/entity"
	"chosenoffset.com/ledgewalk/internal/level"
	"chosenoffset.com/ledgewalk/internal/render"
	"chosenoffset.com/ledgewalk/internal/terrain"
)

const messageDuration = 3.0

// Game holds all game state and logic for one level.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Level        *level.Level
	Editor       *terrain.Editor
	Overlay      *Overlay
	Camera       Camera
	Palette      Palette
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Logger       *log.Logger

	// Editing is on when pointer strokes edit terrain
	Editing bool

	// UI state
	Messages []Message
	Finished bool

	dt         float64
	FrameCount int
}

// New creates a game around an assembled level.
func New(cfg config.Config, lvl *level.Level, r render.Renderer, input render.InputManager, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.Default()
	}

	palette, err := NewPalette(cfg.Editor)
	if err != nil {
		return nil, fmt.Errorf("editor palette: %w", err)
	}

	overlay := &Overlay{}
	editor, err := terrain.NewEditor(lvl.Layers.PlatformsColliders, overlay, logger)
	if err != nil {
		return nil, err
	}

	return &Game{
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
		Level:        lvl,
		Editor:       editor,
		Overlay:      overlay,
		Palette:      palette,
		Renderer:     r,
		InputMgr:     input,
		Logger:       logger,
		Editing:      cfg.Editor.Enabled,
		dt:           1.0 / float64(cfg.Physics.TickRate),
	}, nil
}

// Update handles one fixed tick: editor input first so terrain edits are
// visible to this tick's sensor queries, then the level.
func (g *Game) Update() error {
	g.FrameCount++
	g.updateMessages(g.dt)

	if g.InputMgr.IsKeyJustPressed(render.KeyE) {
		g.toggleEditing()
	}
	if g.Editing {
		g.updateEditor()
	}

	g.Level.Tick(g.dt, g.controls())
	g.UpdateCamera()

	if !g.Finished && g.Level.ReachedEnd() {
		g.Finished = true
		g.ShowMessage("Level complete")
	}

	return nil
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

func (g *Game) controls() entity.Controls {
	in := g.InputMgr
	return entity.Controls{
		Left:  in.IsKeyPressed(render.KeyLeft) || in.IsKeyPressed(render.KeyA),
		Right: in.IsKeyPressed(render.KeyRight) || in.IsKeyPressed(render.KeyD),
		Jump:  in.IsKeyPressed(render.KeyUp) || in.IsKeyPressed(render.KeyW) || in.IsKeyPressed(render.KeySpace),
	}
}

func (g *Game) toggleEditing() {
	g.Editing = !g.Editing
	if !g.Editing {
		g.Editor.Cancel()
		g.ShowMessage("Editor off")
		return
	}
	g.ShowMessage("Editor on")
}

// updateEditor maps the pointer onto the editor: press begins a stroke,
// holding moves its end, release commits it. Right click drops a live stroke.
func (g *Game) updateEditor() {
	in := g.InputMgr
	p := g.Camera.ToWorld(in.GetCursorPosition())

	if in.IsMouseButtonJustPressed(render.MouseButtonRight) {
		g.Editor.Cancel()
		return
	}

	switch {
	case in.IsMouseButtonJustPressed(render.MouseButtonLeft):
		if err := g.Editor.BeginDraw(p); err != nil && !errors.Is(err, terrain.ErrDrawInProgress) {
			g.Logger.Warn("begin stroke", "err", err)
		}
	case in.IsMouseButtonJustReleased(render.MouseButtonLeft):
		if !g.Editor.Active() {
			return
		}
		tiles, err := g.Editor.EndDraw(p)
		if err != nil {
			g.Logger.Error("commit stroke", "err", err)
			g.ShowMessage("Stroke failed")
			return
		}
		g.ShowMessage(fmt.Sprintf("%d tiles solid", len(tiles)))
	case in.IsMouseButtonPressed(render.MouseButtonLeft):
		g.Editor.Tick(p)
	}
}

// UpdateCamera centers the camera on the player, clamped to the level bounds.
func (g *Game) UpdateCamera() {
	if g.Level.Player == nil {
		return
	}
	center := g.Level.Player.Body.Center()
	bounds := g.Level.Bounds
	viewW, viewH := float64(g.ScreenWidth), float64(g.ScreenHeight)

	g.Camera.X = clampAxis(center.X-viewW/2, bounds.X, bounds.Right()-viewW)
	g.Camera.Y = clampAxis(center.Y-viewH/2, bounds.Y, bounds.Bottom()-viewH)
}

// clampAxis clamps v to [lo, hi], pinning to lo when the view is larger than the level.
func clampAxis(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: messageDuration,
		MaxTime:  messageDuration,
	})
	g.Logger.Info("message", "text", text)
}
