// Package sensor implements the short-range ledge probe every moving entity
// carries. A probe is a 45 degree forward-and-down segment cast from the top of
// the body's leading edge; the result is cached until the body has moved
// further than the configured precision.
package sensor

import (
	"fmt"
	"math"

	"chosenoffset.com/ledgewalk/internal/core/geom"
	"chosenoffset.com/ledgewalk/internal/physics"
	"chosenoffset.com/ledgewalk/internal/world/tilemap"
)

const (
	// DefaultRayLength is the probe extent along each axis
	DefaultRayLength = 40.0
	// DefaultPrecision recomputes on any horizontal movement
	DefaultPrecision = 0.0
)

// Options tunes a sensor
type Options struct {
	RayLength float64 // Probe extent along both axes
	Precision float64 // Horizontal displacement tolerated before recomputing
}

// DefaultOptions returns the stock probe configuration
func DefaultOptions() Options {
	return Options{RayLength: DefaultRayLength, Precision: DefaultPrecision}
}

// Result is what a query reports
type Result struct {
	Ray    geom.Segment
	HasHit bool // True when the probe touches a non-empty tile
}

// Sensor is a per-entity probe with its own cache. Never share one between entities.
type Sensor struct {
	layer *tilemap.Layer
	opts  Options

	accumulatedDx float64
	last          *Result // nil until the first query
	recomputes    int
}

// New creates a sensor bound to layer
func New(layer *tilemap.Layer, opts Options) (*Sensor, error) {
	if layer == nil {
		return nil, tilemap.ErrNilLayer
	}
	if opts.RayLength <= 0 || math.IsNaN(opts.RayLength) || math.IsInf(opts.RayLength, 0) {
		return nil, fmt.Errorf("invalid sensor ray length %v", opts.RayLength)
	}
	if opts.Precision < 0 || math.IsNaN(opts.Precision) {
		return nil, fmt.Errorf("invalid sensor precision %v", opts.Precision)
	}
	return &Sensor{layer: layer, opts: opts}, nil
}

// Options returns the sensor configuration
func (s *Sensor) Options() Options {
	return s.opts
}

// Layer returns the tile layer the sensor probes
func (s *Sensor) Layer() *tilemap.Layer {
	return s.layer
}

// ProbeSegment builds the probe for a body without touching any cache
func ProbeSegment(body *physics.Body, rayLength float64) geom.Segment {
	x1 := body.X + body.Width
	y1 := body.Y + body.HalfHeight()
	return geom.NewSegment(x1, y1, x1+rayLength, y1+rayLength)
}

// Query probes the layer for the body's current position.
//
// Horizontal displacement since the previous step is accumulated on every
// call. While its magnitude stays within the precision and a result exists,
// the cached result is returned and the accumulator keeps growing. Otherwise
// the probe is recomputed against the current layer state and the
// accumulator resets to zero.
//
// Any non-empty tile counts as a hit, whether or not its collision flag is set.
func (s *Sensor) Query(body *physics.Body) Result {
	s.accumulatedDx += body.X - body.PrevX

	if s.last != nil && math.Abs(s.accumulatedDx) <= s.opts.Precision {
		return *s.last
	}

	ray := ProbeSegment(body, s.opts.RayLength)
	hasHit := false
	for _, tile := range s.layer.TilesWithinShape(ray, tilemap.QueryOptions{}) {
		if tile.Index != tilemap.EmptyIndex {
			hasHit = true
			break
		}
	}

	s.last = &Result{Ray: ray, HasHit: hasHit}
	s.accumulatedDx = 0
	s.recomputes++

	return *s.last
}

// Last returns the cached result, if any
func (s *Sensor) Last() (Result, bool) {
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

// Recomputes returns how many queries actually cast the probe
func (s *Sensor) Recomputes() int {
	return s.recomputes
}

// Invalidate drops the cached result so the next query recomputes
func (s *Sensor) Invalidate() {
	s.last = nil
	s.accumulatedDx = 0
}
