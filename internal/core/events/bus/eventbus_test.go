package bus

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got []any
	sub, err := b.Subscribe("test.event", func(e Event) error {
		got = append(got, e.Data())
		return nil
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID())
	assert.Equal(t, "test.event", sub.EventType())

	require.NoError(t, b.Publish(NewEvent("test.event", "tester", 123)))
	require.NoError(t, b.Publish(NewEvent("other.event", "tester", 456)))
	assert.Equal(t, []any{123}, got)
}

func TestDeliveryFollowsSubscriptionOrder(t *testing.T) {
	b := New()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		_, err := b.Subscribe("ev", func(Event) error {
			order = append(order, i)
			return nil
		})
		require.NoError(t, err)
	}
	require.NoError(t, b.Publish(NewEvent("ev", "src", nil)))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	count := 0
	sub, _ := b.Subscribe("ev", func(Event) error { count++; return nil })
	_ = b.Publish(NewEvent("ev", "src", nil))

	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel())
	assert.False(t, sub.IsActive())
	assert.Equal(t, 0, b.SubscriberCount("ev"))

	_ = b.Publish(NewEvent("ev", "src", nil))
	assert.Equal(t, 1, count)
	assert.NoError(t, b.Unsubscribe(nil))
}

func TestCancelDuringDelivery(t *testing.T) {
	b := New()
	var second Subscription
	calls := 0
	_, _ = b.Subscribe("ev", func(Event) error {
		calls++
		return second.Cancel()
	})
	second, _ = b.Subscribe("ev", func(Event) error { calls++; return nil })

	_ = b.Publish(NewEvent("ev", "src", nil))
	assert.Equal(t, 2, calls, "cancellation applies to the next publish")
	_ = b.Publish(NewEvent("ev", "src", nil))
	assert.Equal(t, 3, calls)
}

func TestPublishJoinsHandlerErrors(t *testing.T) {
	b := New()
	errA := errors.New("a")
	errB := errors.New("b")
	_, _ = b.Subscribe("x", func(Event) error { return errA })
	_, _ = b.Subscribe("x", func(Event) error { return nil })
	_, _ = b.Subscribe("x", func(Event) error { return errB })

	err := b.Publish(NewEvent("x", "src", nil))
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)

	err = b.PublishBatch(NewEvent("x", "src", nil), NewEvent("y", "src", nil))
	assert.ErrorIs(t, err, errA)

	m := b.Metrics()
	assert.Equal(t, uint64(3), m.Published)
	assert.Equal(t, uint64(6), m.DeliveredHandlers)
	assert.Equal(t, uint64(2), m.Errors)
}

func TestPublishWithFilters(t *testing.T) {
	b := New()
	count := 0
	_, _ = b.Subscribe("ev", func(Event) error { count++; return nil })

	fromA := func(e Event) bool { return e.Source() == "a" }
	_ = b.PublishWithFilters(NewEvent("ev", "a", nil), fromA)
	_ = b.PublishWithFilters(NewEvent("ev", "b", nil), fromA)

	assert.Equal(t, 1, count)
	assert.Equal(t, uint64(1), b.Metrics().DroppedByFilters)
}

func TestSubscribeRejectsNilHandler(t *testing.T) {
	_, err := New().Subscribe("ev", nil)
	assert.Error(t, err)
}

func TestConcurrentPublishSubscribe(t *testing.T) {
	b := New()
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		n  int
	)
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub, _ := b.Subscribe("ev", func(Event) error {
				mu.Lock()
				n++
				mu.Unlock()
				return nil
			})
			_ = sub.Cancel()
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Publish(NewEvent("ev", "src", j))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, b.SubscriberCount("ev"))
	assert.Equal(t, uint64(800), b.Metrics().Published)
}
