package panel

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/devhud/devhud/internal/history"
	"github.com/devhud/devhud/internal/models"
	"github.com/devhud/devhud/internal/stats"
	"github.com/devhud/devhud/internal/validate"
)

// Network is the network-monitor controller. Packets land in a bounded FIFO
// window; the statistics view is recomputed from the live buffer on every
// query so incremental counters can never drift from buffer contents.
type Network struct {
	mu     sync.Mutex
	buf    *history.Ring[models.NetworkPacket]
	skew   time.Duration
	now    func() time.Time
	logger *zap.Logger

	onRender func()
}

// NewNetwork creates a network controller with the given buffer capacity
// and future-timestamp skew allowance.
func NewNetwork(capacity int, skew time.Duration, logger *zap.Logger) *Network {
	return &Network{
		buf:    history.NewRing[models.NetworkPacket](capacity),
		skew:   skew,
		now:    time.Now,
		logger: logger,
	}
}

// OnRender sets the callback fired after each accepted packet.
func (p *Network) OnRender(fn func()) { p.onRender = fn }

// SetClock overrides the time source used for the future-timestamp check.
func (p *Network) SetClock(now func() time.Time) { p.now = now }

// Log validates and records one packet observation. After insertion the
// buffer length is asserted against capacity; exceeding it means the
// eviction policy is broken and is reported as a fatal InvariantViolation.
func (p *Network) Log(pkt models.NetworkPacket) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := validate.Packet(pkt, p.now(), p.skew); err != nil {
		return err
	}

	evicted := p.buf.Push(pkt)
	if c := p.buf.Cap(); c > 0 && p.buf.Len() > c {
		return &history.InvariantViolation{
			Check:  "packet-capacity",
			Detail: fmt.Sprintf("buffer holds %d packets, capacity %d", p.buf.Len(), c),
		}
	}
	if evicted {
		p.logger.Debug("Evicted oldest packet", zap.String("id", pkt.ID))
	}

	p.render()
	return nil
}

// Packets returns the ordered packet list currently in the window.
func (p *Network) Packets() []models.NetworkPacket {
	return p.buf.Snapshot()
}

// Stats derives the monitor summary from the live buffer.
func (p *Network) Stats() models.PacketStats {
	return stats.PacketTotals(p.buf.Snapshot())
}

// Latest returns the most recently accepted packet, if any.
func (p *Network) Latest() (models.NetworkPacket, bool) {
	return p.buf.Last()
}

// Clear empties the packet window. Idempotent.
func (p *Network) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buf.Clear()
	p.render()
}

func (p *Network) render() {
	if p.onRender != nil {
		p.onRender()
	}
}
