package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Upstream counts traffic to the upstream GraphQL API. The zero value is ready to use.
type Upstream struct {
	Attempts        Counter
	Retries         Counter
	Failures        Counter
	Unauthenticated Counter

	latency Counter
}

// Observe adds one attempt's round trip to the latency total.
func (u *Upstream) Observe(d time.Duration) {
	if d > 0 {
		u.latency.Add(uint64(d))
	}
}

type Snapshot struct {
	Attempts        uint64  `json:"attempts"`
	Retries         uint64  `json:"retries"`
	Failures        uint64  `json:"failures"`
	Unauthenticated uint64  `json:"unauthenticated"`
	AvgLatencyMs    float64 `json:"avgLatencyMs"`
}

func (u *Upstream) Snapshot() Snapshot {
	s := Snapshot{
		Attempts:        u.Attempts.Load(),
		Retries:         u.Retries.Load(),
		Failures:        u.Failures.Load(),
		Unauthenticated: u.Unauthenticated.Load(),
	}
	if s.Attempts > 0 {
		avg := time.Duration(u.latency.Load() / s.Attempts)
		s.AvgLatencyMs = float64(avg) / float64(time.Millisecond)
	}
	return s
}
