package panel

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/devhud/devhud/internal/history"
	"github.com/devhud/devhud/internal/models"
	"github.com/devhud/devhud/internal/provider"
	"github.com/devhud/devhud/internal/validate"
)

// Memory is the memory-viewer controller. Snapshots come from an injected
// Provider, are validated against the heap ordering and allocation-sum
// invariants, and land in a bounded history; the viewer renders the most
// recent one.
type Memory struct {
	mu     sync.Mutex
	src    provider.Provider
	hist   *history.Ring[models.MemorySnapshot]
	logger *zap.Logger

	onRender func()
}

// NewMemory creates a memory controller reading from src and retaining up
// to capacity snapshots (<= 0 retains indefinitely).
func NewMemory(src provider.Provider, capacity int, logger *zap.Logger) *Memory {
	return &Memory{
		src:    src,
		hist:   history.NewRing[models.MemorySnapshot](capacity),
		logger: logger,
	}
}

// OnRender sets the callback fired after each accepted snapshot.
func (p *Memory) OnRender(fn func()) { p.onRender = fn }

// TakeSnapshot requests a snapshot from the provider, validates it, and
// appends it to history. Rejected snapshots leave history untouched and the
// returned ValidationError names the failed invariant.
func (p *Memory) TakeSnapshot(ctx context.Context) (models.MemorySnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap, err := p.src.Snapshot(ctx)
	if err != nil {
		return models.MemorySnapshot{}, fmt.Errorf("memory provider: %w", err)
	}
	if err := validate.Snapshot(snap); err != nil {
		return models.MemorySnapshot{}, err
	}

	p.hist.Push(snap)
	p.logger.Debug("Captured memory snapshot",
		zap.Float64("used_heap", snap.UsedHeap),
		zap.Float64("total_heap", snap.TotalHeap))

	p.render()
	return snap, nil
}

// Latest returns the most recently accepted snapshot, if any.
func (p *Memory) Latest() (models.MemorySnapshot, bool) {
	return p.hist.Last()
}

// History returns accepted snapshots in insertion order.
func (p *Memory) History() []models.MemorySnapshot {
	return p.hist.Snapshot()
}

// Clear empties the snapshot history. Idempotent.
func (p *Memory) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hist.Clear()
	p.render()
}

func (p *Memory) render() {
	if p.onRender != nil {
		p.onRender()
	}
}
