// Package spawn turns the data-driven spawn points of a map into entities.
// A registry maps the type tag written in the map to a constructor and is
// used once, when the level is assembled.
package spawn

import (
	"errors"
	"fmt"
	"sort"

	"chosenoffset.com/ledgewalk/internal/entity"
)

// ErrUnknownSpawnType is returned when a spawn point names an unregistered type
var ErrUnknownSpawnType = errors.New("spawn: unknown spawn type")

// Point is a spawn marker read from the map
type Point struct {
	Type string
	X, Y float64
}

// Context carries what constructors need from the level being built
type Context struct {
	Colliders entity.ColliderRegistrar
	Tuning    map[entity.Kind]entity.Tuning
}

// Constructor builds an entity standing at (x, y)
type Constructor func(ctx Context, x, y float64) (*entity.Entity, error)

// Registry maps spawn type tags to constructors
type Registry struct {
	table map[string]Constructor
	skip  map[int]bool
}

// Option configures a Registry
type Option func(*Registry)

// WithSkippedIndices leaves out the spawn points at the given positions of the
// point list. This is per-level override data, not a general rule.
func WithSkippedIndices(indices ...int) Option {
	return func(r *Registry) {
		for _, i := range indices {
			r.skip[i] = true
		}
	}
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		table: make(map[string]Constructor),
		skip:  make(map[int]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a constructor for a type tag
func (r *Registry) Register(tag string, c Constructor) error {
	if tag == "" {
		return fmt.Errorf("spawn: empty type tag")
	}
	if c == nil {
		return fmt.Errorf("spawn: nil constructor for %q", tag)
	}
	if _, exists := r.table[tag]; exists {
		return fmt.Errorf("spawn: type %q already registered", tag)
	}
	r.table[tag] = c
	return nil
}

// Lookup returns the constructor for a tag
func (r *Registry) Lookup(tag string) (Constructor, bool) {
	c, ok := r.table[tag]
	return c, ok
}

// Types returns the registered tags sorted alphabetically
func (r *Registry) Types() []string {
	tags := make([]string, 0, len(r.table))
	for tag := range r.table {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Skipped reports whether the spawn point at index i is left out
func (r *Registry) Skipped(i int) bool {
	return r.skip[i]
}

// CreateAll builds one entity per spawn point, in order. Every tag is checked
// before anything is constructed, so an unknown tag yields no entities at all.
func (r *Registry) CreateAll(points []Point, ctx Context) ([]*entity.Entity, error) {
	for i, p := range points {
		if r.skip[i] {
			continue
		}
		if _, ok := r.table[p.Type]; !ok {
			return nil, fmt.Errorf("spawn point %d (%.0f, %.0f) type %q: %w", i, p.X, p.Y, p.Type, ErrUnknownSpawnType)
		}
	}

	entities := make([]*entity.Entity, 0, len(points))
	for i, p := range points {
		if r.skip[i] {
			continue
		}
		e, err := r.table[p.Type](ctx, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("spawn point %d type %q: %w", i, p.Type, err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// KindConstructor returns a constructor for an entity kind using the tuning in the context
func KindConstructor(kind entity.Kind) Constructor {
	return func(ctx Context, x, y float64) (*entity.Entity, error) {
		tuning, ok := ctx.Tuning[kind]
		if !ok {
			return nil, fmt.Errorf("no tuning for %s", kind)
		}
		return entity.New(kind, x, y, tuning, ctx.Colliders)
	}
}

// Default returns a registry with the enemy types used by the shipped maps
func Default(opts ...Option) *Registry {
	r := NewRegistry(opts...)
	_ = r.Register("Enemy", KindConstructor(entity.KindPatrolEnemy))
	_ = r.Register("Birdman", KindConstructor(entity.KindBirdman))
	return r
}
