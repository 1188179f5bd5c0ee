package hud

import (
	"encoding/json"
	"time"

	"github.com/devhud/devhud/internal/models"
)

// Export is the serialized snapshot of current aggregate state handed to
// external diagnostics. Every figure is re-derived from the live buffers at
// export time, so a consumer re-deriving the same statistics sees identical
// values.
type Export struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Metrics     MetricsExport `json:"metrics"`
	Memory      MemoryExport  `json:"memory"`
	Overlay     OverlayExport `json:"overlay"`
	Network     NetworkExport `json:"network"`
}

// MetricsExport carries the performance panel state.
type MetricsExport struct {
	Latest *models.PerformanceMetric             `json:"latest,omitempty"`
	Count  int                                   `json:"count"`
	Series map[string][]models.PerformanceMetric `json:"series"`
}

// MemoryExport carries the memory panel state.
type MemoryExport struct {
	Latest    *models.MemorySnapshot `json:"latest,omitempty"`
	Snapshots int                    `json:"snapshots"`
}

// OverlayExport carries the annotation set and visibility flag.
type OverlayExport struct {
	Visible bool                `json:"visible"`
	Shapes  []models.DebugShape `json:"shapes"`
}

// NetworkExport carries the packet window and its derived statistics.
type NetworkExport struct {
	Latest  *models.NetworkPacket  `json:"latest,omitempty"`
	Stats   models.PacketStats     `json:"stats"`
	Packets []models.NetworkPacket `json:"packets"`
}

// Snapshot assembles the export structure from current panel state.
func (h *HUD) Snapshot() Export {
	exp := Export{
		GeneratedAt: time.Now().UTC(),
		Metrics: MetricsExport{
			Count:  len(h.Metrics.Metrics()),
			Series: h.Metrics.Series(),
		},
		Memory: MemoryExport{
			Snapshots: len(h.Memory.History()),
		},
		Overlay: OverlayExport{
			Visible: h.Overlay.Visible(),
			Shapes:  h.Overlay.Shapes(),
		},
		Network: NetworkExport{
			Stats:   h.Network.Stats(),
			Packets: h.Network.Packets(),
		},
	}

	if m, ok := h.Metrics.Latest(); ok {
		exp.Metrics.Latest = &m
	}
	if s, ok := h.Memory.Latest(); ok {
		exp.Memory.Latest = &s
	}
	if p, ok := h.Network.Latest(); ok {
		exp.Network.Latest = &p
	}
	return exp
}

// Export serializes the current aggregate state as JSON.
func (h *HUD) Export() ([]byte, error) {
	return json.Marshal(h.Snapshot())
}
