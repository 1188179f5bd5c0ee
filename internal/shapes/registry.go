// Package shapes implements the identity-keyed store for visual debug
// annotations, plus the overlay's visibility state machine. Validation
// lives in the validate package; the registry only stores what the overlay
// controller has already accepted.
package shapes

import (
	"sort"
	"sync"

	"github.com/devhud/devhud/internal/models"
)

// Registry holds the current debug annotations keyed by ID and the overlay
// visibility flag. Visibility starts hidden; the flag is consumed only by
// the render layer.
type Registry struct {
	mu      sync.Mutex
	shapes  map[string]models.DebugShape
	visible bool
}

// NewRegistry creates an empty registry with visibility hidden.
func NewRegistry() *Registry {
	return &Registry{
		shapes: make(map[string]models.DebugShape),
	}
}

// Put inserts or overwrites the shape keyed by its ID. Last write wins;
// there is no merging with a previous entry under the same ID.
func (r *Registry) Put(s models.DebugShape) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shapes[s.ID] = s
}

// Remove deletes the shape with the given ID. Removing an absent ID is a
// no-op, not an error.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shapes, id)
}

// Clear removes every shape. Idempotent.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shapes = make(map[string]models.DebugShape)
}

// Get returns the shape stored under id, if any.
func (r *Registry) Get(id string) (models.DebugShape, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shapes[id]
	return s, ok
}

// Len returns the number of stored shapes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shapes)
}

// All returns a copy of the current shape set, ordered by ID for stable
// iteration in queries and exports.
func (r *Registry) All() []models.DebugShape {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.DebugShape, 0, len(r.shapes))
	for _, s := range r.shapes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Show makes the overlay visible.
func (r *Registry) Show() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = true
}

// Hide makes the overlay hidden.
func (r *Registry) Hide() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = false
}

// Toggle flips the visibility flag and returns the new state.
func (r *Registry) Toggle() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = !r.visible
	return r.visible
}

// Visible reports the current visibility flag.
func (r *Registry) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}
