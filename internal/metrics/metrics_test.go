package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Concurrent(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	c.Add(10)
	assert.Equal(t, uint64(60), c.Load())
}

func TestUpstream_Snapshot(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		var u Upstream
		assert.Equal(t, Snapshot{}, u.Snapshot())
	})

	t.Run("Average latency", func(t *testing.T) {
		var u Upstream
		u.Attempts.Add(2)
		u.Retries.Inc()
		u.Observe(10 * time.Millisecond)
		u.Observe(30 * time.Millisecond)
		u.Observe(-time.Second)

		s := u.Snapshot()
		assert.Equal(t, uint64(2), s.Attempts)
		assert.Equal(t, uint64(1), s.Retries)
		assert.InDelta(t, 20.0, s.AvgLatencyMs, 0.001)
	})
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	assert.GreaterOrEqual(t, timer.Duration(), time.Duration(0))
}
