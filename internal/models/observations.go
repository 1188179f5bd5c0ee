// Package models defines the observation data types shared by all panels.
// Observations are immutable once accepted; the structures are serialized
// to JSON for the diagnostic export.
package models

import "time"

// Point is a 2D coordinate in overlay space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PerformanceMetric is a single timestamped sample for one graph category.
type PerformanceMetric struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Category  string    `json:"category"`
}

// MemorySnapshot is a point-in-time view of heap usage with a per-subsystem
// allocation breakdown. Accepted snapshots satisfy
// UsedHeap <= TotalHeap <= HeapLimit and sum(Allocation) == UsedHeap
// within AllocationTolerance.
type MemorySnapshot struct {
	Timestamp  time.Time          `json:"timestamp"`
	TotalHeap  float64            `json:"total_heap"`
	UsedHeap   float64            `json:"used_heap"`
	HeapLimit  float64            `json:"heap_limit"`
	Allocation map[string]float64 `json:"allocation"`
}

// Direction indicates whether a packet was sent or received.
type Direction string

const (
	DirectionSend    Direction = "send"
	DirectionReceive Direction = "receive"
)

// NetworkPacket is one logged packet observation. Latency is optional:
// nil means the packet carries no latency measurement.
type NetworkPacket struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Direction Direction `json:"direction"`
	Size      float64   `json:"size"`
	Latency   *float64  `json:"latency,omitempty"`
}

// PacketStats is the derived view over the live packet buffer.
// Recomputed on every query, never incrementally maintained.
type PacketStats struct {
	Count         int     `json:"count"`
	AvgLatency    float64 `json:"avg_latency"`
	BytesSent     float64 `json:"bytes_sent"`
	BytesReceived float64 `json:"bytes_received"`
}
