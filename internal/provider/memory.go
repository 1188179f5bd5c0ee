// Package provider defines the memory-telemetry source injected by the host
// application. The memory panel never synthesizes figures itself; it only
// validates and records what a Provider reports.
package provider

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/devhud/devhud/internal/models"
)

// Provider supplies memory snapshots on request.
type Provider interface {
	// Snapshot gathers a point-in-time memory observation.
	// The context allows for cancellation and timeout control.
	Snapshot(ctx context.Context) (models.MemorySnapshot, error)
}

// SystemProvider reads the Go runtime's heap accounting and uses gopsutil
// for the machine-level limit. The allocation breakdown partitions the used
// figure exactly, so accepted snapshots satisfy the allocation-sum check by
// construction.
type SystemProvider struct{}

// NewSystemProvider creates a provider backed by runtime.MemStats and
// gopsutil virtual memory.
func NewSystemProvider() *SystemProvider {
	return &SystemProvider{}
}

// Snapshot gathers heap usage from the runtime and the physical memory
// limit from the OS.
func (p *SystemProvider) Snapshot(ctx context.Context) (models.MemorySnapshot, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return models.MemorySnapshot{}, err
	}

	allocation := map[string]float64{
		"heap":   float64(ms.HeapInuse),
		"stacks": float64(ms.StackInuse),
		"mspan":  float64(ms.MSpanInuse),
		"mcache": float64(ms.MCacheInuse),
	}
	var used float64
	for _, v := range allocation {
		used += v
	}

	total := float64(ms.Sys)
	limit := float64(vm.Total)
	if total > limit {
		// Runtime reservations can exceed physical memory under heavy
		// overcommit; clamp so the ordering invariant reflects reality.
		total = limit
	}

	return models.MemorySnapshot{
		Timestamp:  time.Now().UTC(),
		TotalHeap:  total,
		UsedHeap:   used,
		HeapLimit:  limit,
		Allocation: allocation,
	}, nil
}

// Static is a fixed-snapshot provider for tests and offline rendering.
type Static struct {
	Snap models.MemorySnapshot
	Err  error
}

// Snapshot returns the configured snapshot or error.
func (p *Static) Snapshot(ctx context.Context) (models.MemorySnapshot, error) {
	return p.Snap, p.Err
}
