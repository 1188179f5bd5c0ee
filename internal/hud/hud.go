// Package hud wires the event bus to the four panel controllers and exposes
// the query and export surface consumed by the render layer. A HUD instance
// is self-contained: construct several with independent buses for isolated
// tests or multiple overlays in one process.
package hud

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/devhud/devhud/internal/bus"
	"github.com/devhud/devhud/internal/config"
	"github.com/devhud/devhud/internal/history"
	"github.com/devhud/devhud/internal/panel"
	"github.com/devhud/devhud/internal/provider"
)

// HUD owns one controller per observation kind and the bus they subscribe to.
type HUD struct {
	Metrics *panel.Metrics
	Memory  *panel.Memory
	Network *panel.Network
	Overlay *panel.Overlay

	bus     *bus.Bus
	logger  *zap.Logger
	onFault func(error)
}

// New constructs a HUD from the configuration, the injected memory
// telemetry source, and a logger, then subscribes every panel to its
// events on a fresh bus.
func New(cfg *config.Config, src provider.Provider, logger *zap.Logger) *HUD {
	h := &HUD{
		Metrics: panel.NewMetrics(cfg.History.MetricCapacity, cfg.Ingestion.RecencyWindow.Duration, logger),
		Memory:  panel.NewMemory(src, cfg.History.SnapshotCapacity, logger),
		Network: panel.NewNetwork(cfg.History.PacketCapacity, cfg.Ingestion.FutureSkew.Duration, logger),
		Overlay: panel.NewOverlay(logger),
		bus:     bus.New(logger),
		logger:  logger,
	}
	h.subscribe()
	return h
}

// Bus returns the ingestion channel producers emit on.
func (h *HUD) Bus() *bus.Bus { return h.bus }

// OnFault sets the callback invoked when a fatal InvariantViolation
// surfaces from an event handler. The default logs at Error level; a host
// that prefers to crash can install its own handler.
func (h *HUD) OnFault(fn func(error)) { h.onFault = fn }

// subscribe wires each ingestion event to its owning panel. Payloads of an
// unexpected shape are dropped with a warning; they indicate a producer
// bug, not invalid telemetry.
func (h *HUD) subscribe() {
	h.bus.Subscribe(bus.EventMetric, func(payload interface{}) {
		p, ok := payload.(bus.MetricPayload)
		if !ok {
			h.dropPayload(bus.EventMetric, payload)
			return
		}
		h.report(h.Metrics.Add(p.Value, p.Category))
	})

	h.bus.Subscribe(bus.EventSnapshotRequest, func(payload interface{}) {
		_, err := h.Memory.TakeSnapshot(context.Background())
		h.report(err)
	})

	h.bus.Subscribe(bus.EventShapeAdd, func(payload interface{}) {
		p, ok := payload.(bus.ShapeAddPayload)
		if !ok {
			h.dropPayload(bus.EventShapeAdd, payload)
			return
		}
		h.report(h.Overlay.Add(p.Shape))
	})

	h.bus.Subscribe(bus.EventShapeRemove, func(payload interface{}) {
		p, ok := payload.(bus.ShapeRemovePayload)
		if !ok {
			h.dropPayload(bus.EventShapeRemove, payload)
			return
		}
		h.Overlay.Remove(p.ID)
	})

	h.bus.Subscribe(bus.EventShapeClear, func(payload interface{}) {
		h.Overlay.Clear()
	})

	h.bus.Subscribe(bus.EventShapeToggle, func(payload interface{}) {
		h.Overlay.Toggle()
	})

	h.bus.Subscribe(bus.EventPacket, func(payload interface{}) {
		p, ok := payload.(bus.PacketPayload)
		if !ok {
			h.dropPayload(bus.EventPacket, payload)
			return
		}
		h.report(h.Network.Log(p.Packet))
	})

	h.bus.Subscribe(bus.EventPacketClear, func(payload interface{}) {
		h.Network.Clear()
	})
}

// report classifies an operation result: validation failures are expected
// and logged at Warn, invariant violations are core bugs routed to the
// fault handler, anything else (e.g. a failing provider) is logged at Error.
func (h *HUD) report(err error) {
	if err == nil {
		return
	}
	var inv *history.InvariantViolation
	if errors.As(err, &inv) {
		if h.onFault != nil {
			h.onFault(err)
			return
		}
		h.logger.Error("Invariant violated", zap.Error(err))
		return
	}
	h.logger.Warn("Observation rejected", zap.Error(err))
}

func (h *HUD) dropPayload(ev bus.Event, payload interface{}) {
	h.logger.Warn("Dropped event with unexpected payload shape",
		zap.String("event", string(ev)),
		zap.Any("payload", payload))
}
