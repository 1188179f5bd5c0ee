// Package stats computes derived aggregates from current buffer contents.
// Every function here is pure: statistics are recomputed on demand from the
// observations passed in and never cached, so there is no drift between a
// query result and the buffer it was derived from.
package stats

import "github.com/devhud/devhud/internal/models"

// SeriesByCategory groups metrics into per-category series for graphing.
// Within each series the input's insertion order is preserved.
func SeriesByCategory(metrics []models.PerformanceMetric) map[string][]models.PerformanceMetric {
	series := make(map[string][]models.PerformanceMetric)
	for _, m := range metrics {
		series[m.Category] = append(series[m.Category], m)
	}
	return series
}

// PacketTotals computes the network monitor summary from the live packet
// buffer: total count, mean latency over the packets that carry one (zero
// when none do), and separate byte totals for each direction.
func PacketTotals(packets []models.NetworkPacket) models.PacketStats {
	var st models.PacketStats
	var latencySum float64
	var latencyCount int

	for _, p := range packets {
		st.Count++
		switch p.Direction {
		case models.DirectionSend:
			st.BytesSent += p.Size
		case models.DirectionReceive:
			st.BytesReceived += p.Size
		}
		if p.Latency != nil {
			latencySum += *p.Latency
			latencyCount++
		}
	}
	if latencyCount > 0 {
		st.AvgLatency = latencySum / float64(latencyCount)
	}
	return st
}

// AllocationSum returns the sum of a snapshot's per-subsystem allocation
// values, the quantity the acceptance check compares against UsedHeap.
func AllocationSum(s models.MemorySnapshot) float64 {
	var sum float64
	for _, v := range s.Allocation {
		sum += v
	}
	return sum
}
