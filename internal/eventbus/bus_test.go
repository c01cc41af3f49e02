package eventbus

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Senders run on the event loop, the UI goroutine, and per-request worker
// goroutines at the same time; the breaker must stay consistent under the
// race detector.
func TestConcurrentSendersShareTheBreaker(t *testing.T) {
	eb := NewEventBus()

	done := make(chan struct{})
	var drained sync.WaitGroup
	drained.Add(2)
	go func() {
		defer drained.Done()
		for {
			select {
			case <-done:
				return
			case <-eb.UIToCore():
			}
		}
	}()
	go func() {
		defer drained.Done()
		for {
			select {
			case <-done:
				return
			case <-eb.CoreToUI():
			}
		}
	}()

	var senders sync.WaitGroup
	for i := 0; i < 8; i++ {
		senders.Add(2)
		go func() {
			defer senders.Done()
			for j := 0; j < 100; j++ {
				_ = eb.SendToUI(StateUpdateEvent{})
			}
		}()
		go func() {
			defer senders.Done()
			for j := 0; j < 100; j++ {
				_ = eb.SendToCore(ProbeRequestEvent{})
			}
		}()
	}
	senders.Wait()
	close(done)
	drained.Wait()
}

func TestCircuitBreakerConcurrentRecords(t *testing.T) {
	cb := NewCircuitBreaker(5, 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cb.RecordFailure()
				cb.IsOpen()
				cb.RecordSuccess()
			}
		}()
	}
	wg.Wait()

	cb.RecordSuccess()
	assert.False(t, cb.IsOpen())
}

func TestSendFailsWhenChannelFull(t *testing.T) {
	eb := NewEventBus()

	// Nothing drains coreToUI: fill it to capacity
	for i := 0; i < 100; i++ {
		require.NoError(t, eb.SendToUI(StateUpdateEvent{}))
	}
	assert.Error(t, eb.SendToUI(StateUpdateEvent{}))
}
