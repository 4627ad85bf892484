package game

import (
	"chosenoffset.com/ledgewalk/internal/core/geom"
	"chosenoffset.com/ledgewalk/internal/world/tilemap"
)

// Overlay records what the terrain editor wants shown. Draw reads it every
// frame; the editor writes it from Update.
type Overlay struct {
	stroke      geom.Segment
	hasStroke   bool
	highlighted []tilemap.Tile
}

// DrawStroke shows the in-progress stroke.
func (o *Overlay) DrawStroke(seg geom.Segment) {
	o.stroke = seg
	o.hasStroke = true
}

// ClearStroke hides the stroke.
func (o *Overlay) ClearStroke() {
	o.hasStroke = false
}

// HighlightTiles replaces the highlighted tiles.
func (o *Overlay) HighlightTiles(tiles []tilemap.Tile) {
	o.highlighted = append(o.highlighted[:0], tiles...)
}

// Stroke returns the visible stroke, if any.
func (o *Overlay) Stroke() (geom.Segment, bool) {
	return o.stroke, o.hasStroke
}

// Highlighted returns the highlighted tiles.
func (o *Overlay) Highlighted() []tilemap.Tile {
	return o.highlighted
}
