package panel

import (
	"go.uber.org/zap"

	"github.com/devhud/devhud/internal/models"
	"github.com/devhud/devhud/internal/shapes"
	"github.com/devhud/devhud/internal/validate"
)

// Overlay is the visual-annotation controller. It validates shapes before
// they reach the registry; a failed validation mutates nothing
// (all-or-nothing semantics).
type Overlay struct {
	reg    *shapes.Registry
	logger *zap.Logger

	onRender func()
}

// NewOverlay creates an overlay controller with an empty, hidden registry.
func NewOverlay(logger *zap.Logger) *Overlay {
	return &Overlay{
		reg:    shapes.NewRegistry(),
		logger: logger,
	}
}

// OnRender sets the callback fired after each registry mutation.
func (p *Overlay) OnRender(fn func()) { p.onRender = fn }

// Add validates and upserts a shape. Re-adding an ID overwrites the
// previous entry.
func (p *Overlay) Add(s models.DebugShape) error {
	if err := validate.Shape(s); err != nil {
		return err
	}
	p.reg.Put(s)
	p.render()
	return nil
}

// Remove deletes the shape with the given ID; absent IDs are a no-op.
func (p *Overlay) Remove(id string) {
	p.reg.Remove(id)
	p.render()
}

// Clear removes all shapes. Idempotent.
func (p *Overlay) Clear() {
	p.reg.Clear()
	p.render()
}

// Show makes the overlay visible.
func (p *Overlay) Show() {
	p.reg.Show()
	p.render()
}

// Hide makes the overlay hidden.
func (p *Overlay) Hide() {
	p.reg.Hide()
	p.render()
}

// Toggle flips overlay visibility.
func (p *Overlay) Toggle() {
	visible := p.reg.Toggle()
	p.logger.Debug("Toggled overlay", zap.Bool("visible", visible))
	p.render()
}

// Visible reports the visibility flag consumed by the render layer.
func (p *Overlay) Visible() bool { return p.reg.Visible() }

// Shapes returns the current annotation set ordered by ID.
func (p *Overlay) Shapes() []models.DebugShape { return p.reg.All() }

// Get returns the shape stored under id, if any.
func (p *Overlay) Get(id string) (models.DebugShape, bool) { return p.reg.Get(id) }

func (p *Overlay) render() {
	if p.onRender != nil {
		p.onRender()
	}
}
