// Package terrain lets the player redraw collidable terrain at runtime. A
// stroke runs from pointer-down to pointer-up; every non-empty tile the stroke
// touches becomes collidable, and the next stroke first rolls those tiles back.
package terrain

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"chosenoffset.com/ledgewalk/internal/core/geom"
	"chosenoffset.com/ledgewalk/internal/world/tilemap"
)

var (
	// ErrDrawInProgress is returned by BeginDraw while a stroke is live
	ErrDrawInProgress = errors.New("terrain: stroke already in progress")
	// ErrNotDrawing is returned by EndDraw without a matching BeginDraw
	ErrNotDrawing = errors.New("terrain: no stroke in progress")
)

// Overlay renders editor feedback. It has no gameplay effect.
type Overlay interface {
	// DrawStroke shows the live stroke
	DrawStroke(seg geom.Segment)
	// ClearStroke hides the stroke
	ClearStroke()
	// HighlightTiles replaces the set of highlighted collidable tiles
	HighlightTiles(tiles []tilemap.Tile)
}

type noopOverlay struct{}

func (noopOverlay) DrawStroke(geom.Segment) {}
func (noopOverlay) ClearStroke() {}
func (noopOverlay) HighlightTiles([]tilemap.Tile) {}

// DrawState is the editor's stroke bookkeeping
type DrawState struct {
	Active       bool
	Segment      geom.Segment
	LastHitTiles []tilemap.Tile // Tiles marked by the previous stroke
}

// Editor converts pointer strokes into tile collision toggles
type Editor struct {
	layer   *tilemap.Layer
	overlay Overlay
	logger  *log.Logger
	state   DrawState
	strokes int
}

// NewEditor creates an editor for layer. overlay and logger may be nil.
func NewEditor(layer *tilemap.Layer, overlay Overlay, logger *log.Logger) (*Editor, error) {
	if layer == nil {
		return nil, tilemap.ErrNilLayer
	}
	if overlay == nil {
		overlay = noopOverlay{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Editor{layer: layer, overlay: overlay, logger: logger}, nil
}

// BeginDraw starts a stroke at p after clearing collision on the tiles the
// previous stroke marked. A second call while a stroke is live changes nothing.
func (e *Editor) BeginDraw(p geom.Point) error {
	if e.state.Active {
		return ErrDrawInProgress
	}

	if len(e.state.LastHitTiles) > 0 {
		if err := e.layer.SetCollision(e.state.LastHitTiles, false); err != nil {
			return fmt.Errorf("roll back previous stroke: %w", err)
		}
		e.logger.Debug("rolled back stroke", "tiles", len(e.state.LastHitTiles))
		e.state.LastHitTiles = nil
		e.overlay.HighlightTiles(e.layer.CollidingTiles())
	}

	e.state.Segment = geom.Segment{A: p, B: p}
	e.state.Active = true
	e.overlay.DrawStroke(e.state.Segment)
	return nil
}

// Tick follows the pointer while a stroke is live. It never touches the grid.
func (e *Editor) Tick(p geom.Point) {
	if !e.state.Active {
		return
	}
	e.state.Segment.B = p
	e.overlay.DrawStroke(e.state.Segment)
}

// EndDraw finishes the stroke at p, marks every non-empty tile it touches as
// collidable and returns those tiles.
func (e *Editor) EndDraw(p geom.Point) ([]tilemap.Tile, error) {
	if !e.state.Active {
		return nil, ErrNotDrawing
	}

	e.state.Segment.B = p
	tiles := e.layer.TilesWithinShape(e.state.Segment, tilemap.QueryOptions{IsNotEmpty: true})
	if err := e.layer.SetCollision(tiles, true); err != nil {
		return nil, fmt.Errorf("commit stroke: %w", err)
	}

	e.state.LastHitTiles = tiles
	e.state.Active = false
	e.strokes++

	e.logger.Debug("committed stroke",
		"from", fmt.Sprintf("%.0f,%.0f", e.state.Segment.A.X, e.state.Segment.A.Y),
		"to", fmt.Sprintf("%.0f,%.0f", p.X, p.Y),
		"tiles", len(tiles))

	e.overlay.ClearStroke()
	e.overlay.HighlightTiles(e.layer.CollidingTiles())
	return tiles, nil
}

// Cancel abandons a live stroke without marking anything
func (e *Editor) Cancel() {
	if !e.state.Active {
		return
	}
	e.state.Active = false
	e.overlay.ClearStroke()
}

// Active reports whether a stroke is live
func (e *Editor) Active() bool {
	return e.state.Active
}

// State returns a copy of the draw state
func (e *Editor) State() DrawState {
	st := e.state
	st.LastHitTiles = append([]tilemap.Tile(nil), e.state.LastHitTiles...)
	return st
}

// Strokes returns the number of committed strokes
func (e *Editor) Strokes() int {
	return e.strokes
}
