package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devhud/devhud/internal/models"
)

func metric(cat string, v float64) models.PerformanceMetric {
	return models.PerformanceMetric{Timestamp: time.Now(), Value: v, Category: cat}
}

func TestSeriesByCategory(t *testing.T) {
	series := SeriesByCategory([]models.PerformanceMetric{
		metric("fps", 60),
		metric("frame", 16.6),
		metric("fps", 58),
		metric("frame", 17.1),
		metric("fps", 61),
	})

	require.Len(t, series, 2)
	require.Len(t, series["fps"], 3)
	require.Len(t, series["frame"], 2)

	assert.Equal(t, []float64{60, 58, 61},
		[]float64{series["fps"][0].Value, series["fps"][1].Value, series["fps"][2].Value},
		"insertion order must be preserved within a series")
}

func TestSeriesByCategory_Empty(t *testing.T) {
	assert.Empty(t, SeriesByCategory(nil))
}

func TestPacketTotals(t *testing.T) {
	l1, l2 := 10.0, 30.0

	st := PacketTotals([]models.NetworkPacket{
		{ID: "a", Direction: models.DirectionSend, Size: 100, Latency: &l1},
		{ID: "b", Direction: models.DirectionReceive, Size: 50, Latency: &l2},
		{ID: "c", Direction: models.DirectionSend, Size: 25},
	})

	assert.Equal(t, 3, st.Count)
	assert.Equal(t, 125.0, st.BytesSent)
	assert.Equal(t, 50.0, st.BytesReceived)
	assert.Equal(t, 20.0, st.AvgLatency, "mean over packets that carry latency only")
}

func TestPacketTotals_NoLatency(t *testing.T) {
	st := PacketTotals([]models.NetworkPacket{
		{ID: "a", Direction: models.DirectionSend, Size: 1},
	})
	assert.Zero(t, st.AvgLatency, "mean latency is zero when no packet carries latency")
}

func TestPacketTotals_Empty(t *testing.T) {
	assert.Equal(t, models.PacketStats{}, PacketTotals(nil))
}

func TestAllocationSum(t *testing.T) {
	s := models.MemorySnapshot{
		Allocation: map[string]float64{"a": 1.5, "b": 2.5, "c": 6},
	}
	assert.Equal(t, 10.0, AllocationSum(s))
	assert.Zero(t, AllocationSum(models.MemorySnapshot{}))
}
