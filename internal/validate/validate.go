// Package validate implements the per-kind acceptance rules applied before
// any observation enters panel state. Every rejection is a ValidationError
// naming the offending field; validators never mutate their input.
package validate

import (
	"fmt"
	"math"
	"time"

	"github.com/devhud/devhud/internal/models"
)

// AllocationTolerance is the maximum absolute difference allowed between
// the sum of a snapshot's allocation values and its used heap size.
const AllocationTolerance = 0.1

// ValidationError reports malformed or out-of-contract input. The operation
// that raised it left panel state untouched; re-invoking with corrected
// input is always safe.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func errf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Metric checks a performance metric against the recency window: a sample
// whose timestamp is more than window old at acceptance time is stale and
// rejected. This guards against clock skew and calls queued during dead time.
func Metric(m models.PerformanceMetric, now time.Time, window time.Duration) error {
	if m.Category == "" {
		return errf("category", "must be a non-empty string")
	}
	if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
		return errf("value", "must be a finite number, got %v", m.Value)
	}
	if age := now.Sub(m.Timestamp); age > window {
		return errf("timestamp", "stale sample: %v old exceeds %v recency window", age, window)
	}
	return nil
}

// Snapshot checks the two memory snapshot invariants, in order:
// used <= total <= limit, then sum(allocation) == used within
// AllocationTolerance. The returned error identifies which invariant failed.
func Snapshot(s models.MemorySnapshot) error {
	if s.TotalHeap < 0 || s.UsedHeap < 0 || s.HeapLimit < 0 {
		return errf("heap_sizes", "heap magnitudes must be non-negative")
	}
	if s.UsedHeap > s.TotalHeap {
		return errf("used_heap", "used heap %.1f exceeds total heap %.1f", s.UsedHeap, s.TotalHeap)
	}
	if s.TotalHeap > s.HeapLimit {
		return errf("total_heap", "total heap %.1f exceeds heap limit %.1f", s.TotalHeap, s.HeapLimit)
	}
	var sum float64
	for _, v := range s.Allocation {
		if v < 0 {
			return errf("allocation", "allocation values must be non-negative")
		}
		sum += v
	}
	if math.Abs(sum-s.UsedHeap) > AllocationTolerance {
		return errf("allocation", "allocation sum %.2f does not match used heap %.2f", sum, s.UsedHeap)
	}
	return nil
}

// Packet checks a network packet observation. skew is the allowance for
// producer clocks running slightly ahead of ours; timestamps beyond now+skew
// are rejected as being in the future.
func Packet(p models.NetworkPacket, now time.Time, skew time.Duration) error {
	if p.ID == "" {
		return errf("id", "must be a non-empty string")
	}
	if p.Timestamp.After(now.Add(skew)) {
		return errf("timestamp", "timestamp %v is in the future", p.Timestamp)
	}
	if p.Direction != models.DirectionSend && p.Direction != models.DirectionReceive {
		return errf("direction", "must be %q or %q, got %q", models.DirectionSend, models.DirectionReceive, p.Direction)
	}
	if !(p.Size > 0) {
		return errf("size", "must be strictly positive, got %v", p.Size)
	}
	if p.Latency != nil && (*p.Latency < 0 || math.IsNaN(*p.Latency)) {
		return errf("latency", "must be non-negative, got %v", *p.Latency)
	}
	return nil
}

// Shape checks a debug annotation: non-empty ID, finite coordinates, a
// recognized kind, and the kind's payload requirement. The check is
// exhaustive over the payload variants so a mismatched payload (e.g. a
// radius attached to a line) is rejected rather than ignored.
func Shape(s models.DebugShape) error {
	if s.ID == "" {
		return errf("id", "must be a non-empty string")
	}
	if !finite(s.Position) {
		return errf("position", "coordinates must be finite numbers")
	}
	switch s.Kind {
	case models.ShapePoint:
		if s.Payload != nil {
			return errf("payload", "point shapes carry no payload")
		}
	case models.ShapeLine:
		p, ok := s.Payload.(models.LinePayload)
		if !ok {
			return errf("payload", "line shapes require an end point")
		}
		if !finite(p.End) {
			return errf("payload.end", "coordinates must be finite numbers")
		}
	case models.ShapeBox:
		p, ok := s.Payload.(models.BoxPayload)
		if !ok {
			return errf("payload", "box shapes require a size vector")
		}
		if !finite(p.Size) {
			return errf("payload.size", "dimensions must be finite numbers")
		}
	case models.ShapeCircle:
		p, ok := s.Payload.(models.CirclePayload)
		if !ok {
			return errf("payload", "circle shapes require a radius")
		}
		if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
			return errf("payload.radius", "must be strictly positive, got %v", p.Radius)
		}
	default:
		return errf("kind", "unrecognized shape kind %q", s.Kind)
	}
	return nil
}

func finite(p models.Point) bool {
	for _, v := range []float64{p.X, p.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
