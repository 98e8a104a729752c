// Package catalog is the registry of celestial bodies keyed by id.
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/litescript/skyseeker/internal/body"
	"github.com/litescript/skyseeker/internal/sky"
)

// ErrBodyNotFound is returned when an id has never been loaded.
var ErrBodyNotFound = errors.New("body not found")

// Positioner computes the position of a body. body.Pipeline satisfies it.
type Positioner interface {
	Position(b body.CelestialBody, o sky.Observer, t sky.Time, eo sky.EarthOrientation) (sky.Position, error)
}

// Catalog maps ids to bodies. Enumeration follows first-insertion order,
// which gives the scheduler a stable ordering; overwriting an id keeps
// its slot.
type Catalog struct {
	mu       sync.RWMutex
	entries  []body.CelestialBody
	index    map[string]int
	pipeline Positioner
}

// New creates an empty catalog that positions bodies with p.
func New(p Positioner) *Catalog {
	return &Catalog{
		index:    make(map[string]int),
		pipeline: p,
	}
}

// Load inserts b, replacing any body with the same id.
func (c *Catalog) Load(b body.CelestialBody) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked(b)
}

// LoadAll loads bodies in order; later entries win on duplicate ids.
func (c *Catalog) LoadAll(bodies []body.CelestialBody) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range bodies {
		c.loadLocked(b)
	}
}

// LoadStandardBodies loads the planets, the Moon and the Sun.
func (c *Catalog) LoadStandardBodies() {
	c.LoadAll(body.StandardBodies())
}

func (c *Catalog) loadLocked(b body.CelestialBody) {
	id := b.ID()
	if i, ok := c.index[id]; ok {
		c.entries[i] = b
		return
	}
	c.index[id] = len(c.entries)
	c.entries = append(c.entries, b)
}

// Remove deletes the body with the given id. It reports whether the id
// was present.
func (c *Catalog) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok {
		return false
	}
	delete(c.index, id)
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].ID()] = j
	}
	return true
}

// Get returns the body for id.
func (c *Catalog) Get(id string) (body.CelestialBody, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return body.CelestialBody{}, false
	}
	return c.entries[i], true
}

// Position looks up id and computes its position. A missing id yields
// ErrBodyNotFound; pipeline failures are returned as is.
func (c *Catalog) Position(id string, o sky.Observer, t sky.Time, eo sky.EarthOrientation) (sky.Position, error) {
	b, ok := c.Get(id)
	if !ok {
		return sky.Position{}, fmt.Errorf("%w: %s", ErrBodyNotFound, id)
	}
	return c.pipeline.Position(b, o, t, eo)
}

// Iterate returns a snapshot of every body in enumeration order.
func (c *Catalog) Iterate() []body.CelestialBody {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]body.CelestialBody, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of bodies.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Window returns up to n bodies starting at start, together with the
// catalog size observed under the same lock.
func (c *Catalog) Window(start, n int) ([]body.CelestialBody, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := len(c.entries)
	if start < 0 || start >= total || n <= 0 {
		return nil, total
	}
	end := min(start+n, total)
	out := make([]body.CelestialBody, end-start)
	copy(out, c.entries[start:end])
	return out, total
}
