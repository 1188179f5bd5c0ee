package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBus_DispatchInSubscriptionOrder(t *testing.T) {
	b := New(zap.NewNop())

	var order []int
	b.Subscribe(EventMetric, func(interface{}) { order = append(order, 1) })
	b.Subscribe(EventMetric, func(interface{}) { order = append(order, 2) })
	b.Subscribe(EventMetric, func(interface{}) { order = append(order, 3) })

	b.Emit(EventMetric, MetricPayload{Value: 1, Category: "x"})
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestBus_EmissionOrderPreserved(t *testing.T) {
	b := New(zap.NewNop())

	var values []float64
	b.Subscribe(EventMetric, func(payload interface{}) {
		values = append(values, payload.(MetricPayload).Value)
	})

	for i := 0; i < 5; i++ {
		b.Emit(EventMetric, MetricPayload{Value: float64(i), Category: "x"})
	}
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, values)
}

func TestBus_PanickingSubscriberIsIsolated(t *testing.T) {
	b := New(zap.NewNop())

	var delivered []string
	b.Subscribe(EventPacketClear, func(interface{}) { delivered = append(delivered, "first") })
	b.Subscribe(EventPacketClear, func(interface{}) { panic("subscriber bug") })
	b.Subscribe(EventPacketClear, func(interface{}) { delivered = append(delivered, "third") })

	assert.NotPanics(t, func() {
		b.Emit(EventPacketClear, nil)
	})
	assert.Equal(t, []string{"first", "third"}, delivered,
		"a panicking subscriber must not prevent delivery to the others")
}

func TestBus_EmitWithoutSubscribersIsNoop(t *testing.T) {
	b := New(zap.NewNop())
	assert.NotPanics(t, func() {
		b.Emit(EventShapeClear, nil)
	})
}

func TestBus_InstancesAreIndependent(t *testing.T) {
	b1 := New(zap.NewNop())
	b2 := New(zap.NewNop())

	var hits int
	b1.Subscribe(EventMetric, func(interface{}) { hits++ })

	b2.Emit(EventMetric, MetricPayload{Value: 1, Category: "x"})
	assert.Zero(t, hits, "buses are explicit handles, not process-wide singletons")
}
