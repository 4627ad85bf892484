// Package tilemap implements the tile layers the level is built from. A Layer
// is shared for the lifetime of a level: sensors read it every tick while the
// terrain editor flips collision flags on it between ticks.
package tilemap

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"chosenoffset.com/ledgewalk/internal/core/geom"
)

// EmptyIndex marks a grid cell with no tile content
const EmptyIndex = -1

var (
	// ErrNilLayer is returned when a component is wired without a tile layer
	ErrNilLayer = errors.New("tilemap: nil tile layer")
	// ErrOutOfBounds is returned when a tile coordinate lies outside the grid
	ErrOutOfBounds = errors.New("tilemap: tile out of bounds")
)

// Tile is a copy of a single grid cell. Mutations go through Layer.SetCollision.
type Tile struct {
	X, Y       int                    // Grid coordinates
	Index      int                    // Content id, EmptyIndex when empty
	Collides   bool                   // Collision flag consulted by physics and the editor
	Properties map[string]interface{} // Tileset properties (read-only, shared)
}

// IsEmpty reports whether the cell carries no tile
func (t Tile) IsEmpty() bool {
	return t.Index == EmptyIndex
}

// GetPropertyBool returns a boolean tile property or the default value
func (t Tile) GetPropertyBool(key string, defaultValue bool) bool {
	if val, ok := t.Properties[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return defaultValue
}

// QueryOptions filters the tiles returned by shape queries
type QueryOptions struct {
	IsNotEmpty  bool // Skip cells whose index is EmptyIndex
	IsColliding bool // Skip cells without the collision flag
}

func (o QueryOptions) accept(t *Tile) bool {
	if o.IsNotEmpty && t.Index == EmptyIndex {
		return false
	}
	if o.IsColliding && !t.Collides {
		return false
	}
	return true
}

// Layer is a rectangular grid of tiles addressed in world space
type Layer struct {
	mu         sync.RWMutex
	name       string
	width      int
	height     int
	tileWidth  float64
	tileHeight float64
	tiles      []Tile // Row-major [y*width+x]
}

// NewLayer creates a layer where every cell is empty
func NewLayer(name string, width, height int, tileWidth, tileHeight float64) (*Layer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid layer dimensions for %q: %dx%d", name, width, height)
	}
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile size for %q: %vx%v", name, tileWidth, tileHeight)
	}

	tiles := make([]Tile, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tiles[y*width+x] = Tile{X: x, Y: y, Index: EmptyIndex}
		}
	}

	return &Layer{
		name:       name,
		width:      width,
		height:     height,
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
		tiles:      tiles,
	}, nil
}

// Name returns the layer name from the map data
func (l *Layer) Name() string { return l.name }

// Width returns the grid width in tiles
func (l *Layer) Width() int { return l.width }

// Height returns the grid height in tiles
func (l *Layer) Height() int { return l.height }

// TileSize returns the size of one cell in world units
func (l *Layer) TileSize() (w, h float64) { return l.tileWidth, l.tileHeight }

// WorldBounds returns the pixel rectangle covered by the layer
func (l *Layer) WorldBounds() geom.Rect {
	return geom.Rect{W: float64(l.width) * l.tileWidth, H: float64(l.height) * l.tileHeight}
}

func (l *Layer) inBounds(x, y int) bool {
	return x >= 0 && x < l.width && y >= 0 && y < l.height
}

// PutTile places tile content at the given grid coordinates.
// Collision is left off; call SetCollisionByProperty once the layer is filled.
func (l *Layer) PutTile(x, y, index int, props map[string]interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.inBounds(x, y) {
		return fmt.Errorf("put tile (%d, %d) on %q: %w", x, y, l.name, ErrOutOfBounds)
	}
	t := &l.tiles[y*l.width+x]
	t.Index = index
	t.Properties = props
	t.Collides = false
	return nil
}

// TileAt returns a copy of the cell at grid coordinates
func (l *Layer) TileAt(x, y int) (Tile, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.inBounds(x, y) {
		return Tile{}, false
	}
	return l.tiles[y*l.width+x], true
}

// WorldToTile converts a world position to grid coordinates (may be out of grid)
func (l *Layer) WorldToTile(p geom.Point) (int, int) {
	return int(math.Floor(p.X / l.tileWidth)), int(math.Floor(p.Y / l.tileHeight))
}

// TileAtWorld returns the cell containing the world position
func (l *Layer) TileAtWorld(p geom.Point) (Tile, bool) {
	x, y := l.WorldToTile(p)
	return l.TileAt(x, y)
}

// TileRect returns the world-space bounds of a grid cell
func (l *Layer) TileRect(x, y int) geom.Rect {
	return geom.Rect{
		X: float64(x) * l.tileWidth,
		Y: float64(y) * l.tileHeight,
		W: l.tileWidth,
		H: l.tileHeight,
	}
}

// cellRange converts a world rectangle into an inclusive, clamped range of
// grid cells. ok is false when the rectangle misses the grid entirely.
func (l *Layer) cellRange(r geom.Rect) (x0, y0, x1, y1 int, ok bool) {
	x0 = int(math.Floor(r.X / l.tileWidth))
	y0 = int(math.Floor(r.Y / l.tileHeight))
	x1 = int(math.Floor(r.Right() / l.tileWidth))
	y1 = int(math.Floor(r.Bottom() / l.tileHeight))

	if x1 < 0 || y1 < 0 || x0 >= l.width || y0 >= l.height {
		return 0, 0, 0, 0, false
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, l.width-1), min(y1, l.height-1)
	return x0, y0, x1, y1, true
}

// TilesWithinShape returns the cells whose bounds the segment touches, in
// row-major order. Degenerate segments (zero length, NaN, Inf) return nothing.
func (l *Layer) TilesWithinShape(seg geom.Segment, opts QueryOptions) []Tile {
	if seg.Degenerate() {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	x0, y0, x1, y1, ok := l.cellRange(seg.Bounds())
	if !ok {
		return nil
	}

	var hits []Tile
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t := &l.tiles[y*l.width+x]
			if !opts.accept(t) {
				continue
			}
			if geom.SegmentIntersectsRect(seg, l.TileRect(x, y)) {
				hits = append(hits, *t)
			}
		}
	}
	return hits
}

// TilesWithinRect returns the cells sharing interior area with r
func (l *Layer) TilesWithinRect(r geom.Rect, opts QueryOptions) []Tile {
	if r.W <= 0 || r.H <= 0 {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	x0, y0, x1, y1, ok := l.cellRange(r)
	if !ok {
		return nil
	}

	var hits []Tile
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t := &l.tiles[y*l.width+x]
			if opts.accept(t) && l.TileRect(x, y).Overlaps(r) {
				hits = append(hits, *t)
			}
		}
	}
	return hits
}

// SetCollision sets the collision flag on every given tile. All coordinates
// are checked before anything changes, so a bad tile leaves the layer untouched.
func (l *Layer) SetCollision(tiles []Tile, collides bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range tiles {
		if !l.inBounds(t.X, t.Y) {
			return fmt.Errorf("set collision (%d, %d) on %q: %w", t.X, t.Y, l.name, ErrOutOfBounds)
		}
	}
	for _, t := range tiles {
		l.tiles[t.Y*l.width+t.X].Collides = collides
	}
	return nil
}

// SetCollisionByProperty turns collision on for every non-empty tile whose
// property matches value. Returns the number of tiles flagged.
func (l *Layer) SetCollisionByProperty(key string, value interface{}) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	for i := range l.tiles {
		t := &l.tiles[i]
		if t.Index == EmptyIndex {
			continue
		}
		if v, ok := t.Properties[key]; ok && v == value {
			t.Collides = true
			count++
		}
	}
	return count
}

// CollidingTiles returns every cell with the collision flag set
func (l *Layer) CollidingTiles() []Tile {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Tile
	for i := range l.tiles {
		if l.tiles[i].Collides {
			out = append(out, l.tiles[i])
		}
	}
	return out
}
