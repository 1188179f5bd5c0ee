package hud

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/devhud/devhud/internal/bus"
	"github.com/devhud/devhud/internal/config"
	"github.com/devhud/devhud/internal/models"
	"github.com/devhud/devhud/internal/provider"
)

func newTestHUD(t *testing.T) *HUD {
	t.Helper()
	src := &provider.Static{
		Snap: models.MemorySnapshot{
			Timestamp: time.Now().UTC(),
			TotalHeap: 200,
			UsedHeap:  100,
			HeapLimit: 400,
			Allocation: map[string]float64{
				"render":  60,
				"physics": 40,
			},
		},
	}
	return New(config.DefaultConfig(), src, zap.NewNop())
}

func TestHUD_IngestionThroughBus(t *testing.T) {
	h := newTestHUD(t)
	b := h.Bus()

	b.Emit(bus.EventMetric, bus.MetricPayload{Value: 16.6, Category: "frame"})
	b.Emit(bus.EventSnapshotRequest, nil)
	b.Emit(bus.EventShapeAdd, bus.ShapeAddPayload{Shape: models.DebugShape{
		ID:       "cursor",
		Position: models.Point{X: 10, Y: 20},
		Kind:     models.ShapeCircle,
		Payload:  models.CirclePayload{Radius: 4},
	}})
	b.Emit(bus.EventPacket, bus.PacketPayload{Packet: models.NetworkPacket{
		ID:        "p1",
		Timestamp: time.Now().UTC(),
		Direction: models.DirectionSend,
		Size:      100,
	}})

	assert.Len(t, h.Metrics.Metrics(), 1)
	_, ok := h.Memory.Latest()
	assert.True(t, ok)
	assert.Len(t, h.Overlay.Shapes(), 1)
	assert.Equal(t, 1, h.Network.Stats().Count)
}

func TestHUD_RejectedEventsLeaveStateUntouched(t *testing.T) {
	h := newTestHUD(t)
	b := h.Bus()

	b.Emit(bus.EventMetric, bus.MetricPayload{Value: 1}) // missing category
	b.Emit(bus.EventPacket, bus.PacketPayload{Packet: models.NetworkPacket{
		ID: "bad", Timestamp: time.Now().Add(time.Hour),
		Direction: models.DirectionSend, Size: 1,
	}})
	b.Emit(bus.EventShapeAdd, bus.ShapeAddPayload{Shape: models.DebugShape{
		ID: "bad", Kind: models.ShapeCircle, // missing radius
	}})

	assert.Empty(t, h.Metrics.Metrics())
	assert.Empty(t, h.Network.Packets())
	assert.Empty(t, h.Overlay.Shapes())
}

func TestHUD_UnexpectedPayloadShapeDropped(t *testing.T) {
	h := newTestHUD(t)

	assert.NotPanics(t, func() {
		h.Bus().Emit(bus.EventMetric, "not a metric payload")
	})
	assert.Empty(t, h.Metrics.Metrics())
}

func TestHUD_ShapeLifecycleEvents(t *testing.T) {
	h := newTestHUD(t)
	b := h.Bus()

	b.Emit(bus.EventShapeAdd, bus.ShapeAddPayload{Shape: models.DebugShape{ID: "a", Kind: models.ShapePoint}})
	b.Emit(bus.EventShapeAdd, bus.ShapeAddPayload{Shape: models.DebugShape{ID: "b", Kind: models.ShapePoint}})
	b.Emit(bus.EventShapeToggle, nil)
	require.True(t, h.Overlay.Visible())

	b.Emit(bus.EventShapeRemove, bus.ShapeRemovePayload{ID: "a"})
	assert.Len(t, h.Overlay.Shapes(), 1)

	b.Emit(bus.EventShapeClear, nil)
	b.Emit(bus.EventShapeClear, nil) // second clear leaves the same empty state
	assert.Empty(t, h.Overlay.Shapes())
	assert.True(t, h.Overlay.Visible(), "clear affects shapes, not visibility")
}

func TestHUD_ExportRoundTrip(t *testing.T) {
	h := newTestHUD(t)
	b := h.Bus()

	latency := 30.0
	b.Emit(bus.EventMetric, bus.MetricPayload{Value: 60, Category: "fps"})
	b.Emit(bus.EventMetric, bus.MetricPayload{Value: 58, Category: "fps"})
	b.Emit(bus.EventSnapshotRequest, nil)
	b.Emit(bus.EventPacket, bus.PacketPayload{Packet: models.NetworkPacket{
		ID: "a", Timestamp: time.Now().UTC(),
		Direction: models.DirectionSend, Size: 100,
	}})
	b.Emit(bus.EventPacket, bus.PacketPayload{Packet: models.NetworkPacket{
		ID: "b", Timestamp: time.Now().UTC(),
		Direction: models.DirectionReceive, Size: 50, Latency: &latency,
	}})

	data, err := h.Export()
	require.NoError(t, err)
	doc := string(data)

	// Exported statistics must match a fresh derivation from the live buffers.
	live := h.Network.Stats()
	assert.Equal(t, float64(live.Count), gjson.Get(doc, "network.stats.count").Float())
	assert.Equal(t, live.BytesSent, gjson.Get(doc, "network.stats.bytes_sent").Float())
	assert.Equal(t, live.BytesReceived, gjson.Get(doc, "network.stats.bytes_received").Float())
	assert.Equal(t, live.AvgLatency, gjson.Get(doc, "network.stats.avg_latency").Float())

	assert.Equal(t, int64(2), gjson.Get(doc, "metrics.count").Int())
	assert.Equal(t, 58.0, gjson.Get(doc, "metrics.latest.value").Float())
	assert.Equal(t, int64(2), gjson.Get(doc, "metrics.series.fps.#").Int())
	assert.Equal(t, 100.0, gjson.Get(doc, "memory.latest.used_heap").Float())
	assert.False(t, gjson.Get(doc, "overlay.visible").Bool())
	assert.Equal(t, "b", gjson.Get(doc, "network.latest.id").String())
}

func TestHUD_ExportWhileIngesting(t *testing.T) {
	h := newTestHUD(t)
	b := h.Bus()

	for i := 0; i < 120; i++ {
		b.Emit(bus.EventPacket, bus.PacketPayload{Packet: models.NetworkPacket{
			ID: fmt.Sprintf("p%d", i), Timestamp: time.Now().UTC(),
			Direction: models.DirectionSend, Size: 1,
		}})
	}

	data, err := h.Export()
	require.NoError(t, err)
	assert.Equal(t, int64(100), gjson.Get(string(data), "network.packets.#").Int(),
		"export reflects the bounded window, not everything ever logged")
}
