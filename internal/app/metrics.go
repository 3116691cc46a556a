package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks event loop counters and timings.
type Metrics struct {
	// Input handling
	inputCount    atomic.Uint64
	inputTotalNs  atomic.Int64
	inputDropped  atomic.Uint64
	rejectedEdits atomic.Uint64

	// Render timing
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	reloads atomic.Uint64

	// Start time for uptime calculation
	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordInput records input processing timing.
func (m *Metrics) RecordInput(duration time.Duration) {
	m.inputCount.Add(1)
	m.inputTotalNs.Add(duration.Nanoseconds())
}

// RecordInputDropped records a dropped input event.
func (m *Metrics) RecordInputDropped() {
	m.inputDropped.Add(1)
}

// RecordRejectedEdit records an edit refused because the cursor was out of range.
func (m *Metrics) RecordRejectedEdit() {
	m.rejectedEdits.Add(1)
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)

	// Update max (atomic compare-and-swap loop)
	for {
		old := m.renderMaxNs.Load()
		if ns <= old {
			break
		}
		if m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordReload records an applied configuration reload.
func (m *Metrics) RecordReload() {
	m.reloads.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	inputCount := m.inputCount.Load()
	renderCount := m.renderCount.Load()

	var avgInputNs int64
	if inputCount > 0 {
		avgInputNs = m.inputTotalNs.Load() / int64(inputCount)
	}

	var avgRenderNs int64
	if renderCount > 0 {
		avgRenderNs = m.renderTotalNs.Load() / int64(renderCount)
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		InputCount:     inputCount,
		AvgInputTimeNs: avgInputNs,
		InputDropped:   m.inputDropped.Load(),
		RejectedEdits:  m.rejectedEdits.Load(),
		RenderCount:    renderCount,
		AvgRenderNs:    avgRenderNs,
		MaxRenderNs:    m.renderMaxNs.Load(),
		Reloads:        m.reloads.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	InputCount     uint64
	AvgInputTimeNs int64
	InputDropped   uint64
	RejectedEdits  uint64
	RenderCount    uint64
	AvgRenderNs    int64
	MaxRenderNs    int64
	Reloads        uint64
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
