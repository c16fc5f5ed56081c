package dispatcher

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/dshills/actkit/dispatcher/handler"
)

// TypeMetrics holds the dispatch statistics of one effective type.
type TypeMetrics struct {
	Name          string
	DispatchCount uint64
	ErrorCount    uint64
	MethodCounts  [3]uint64 // indexed by handler.Method
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastErr       error
	LastDispatch  time.Time
}

func (tm *TypeMetrics) add(method handler.Method, d time.Duration, err error, now time.Time) {
	if tm.DispatchCount == 0 || d < tm.MinDuration {
		tm.MinDuration = d
	}
	tm.MaxDuration = max(tm.MaxDuration, d)
	tm.DispatchCount++
	if int(method) < len(tm.MethodCounts) {
		tm.MethodCounts[method]++
	}
	tm.TotalDuration += d
	tm.LastErr = err
	tm.LastDispatch = now
	if err != nil {
		tm.ErrorCount++
	}
}

// AverageDuration returns the mean dispatch duration of the type.
func (tm *TypeMetrics) AverageDuration() time.Duration {
	if tm.DispatchCount == 0 {
		return 0
	}
	return tm.TotalDuration / time.Duration(tm.DispatchCount)
}

// ErrorRate returns the percentage of failed dispatches.
func (tm *TypeMetrics) ErrorRate() float64 {
	if tm.DispatchCount == 0 {
		return 0
	}
	return float64(tm.ErrorCount) / float64(tm.DispatchCount) * 100
}

// Metrics collects dispatch statistics. It is safe for concurrent use.
type Metrics struct {
	mu     sync.RWMutex
	types  map[string]*TypeMetrics
	total  TypeMetrics // aggregate over every dispatch, typed or not
	panics uint64
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{types: make(map[string]*TypeMetrics)}
}

// RecordDispatch records one finished dispatch. typeName is empty when the
// target could not be resolved; such dispatches count only in the totals.
func (m *Metrics) RecordDispatch(typeName string, method handler.Method, duration time.Duration, err error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.total.add(method, duration, err, now)
	if typeName == "" {
		return
	}
	tm, ok := m.types[typeName]
	if !ok {
		tm = &TypeMetrics{Name: typeName}
		m.types[typeName] = tm
	}
	tm.add(method, duration, err, now)
}

// RecordPanic counts a recovered handler panic. The dispatch itself is
// recorded by RecordDispatch.
func (m *Metrics) RecordPanic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics++
}

// TotalDispatches returns the number of recorded dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total.DispatchCount
}

// TotalErrors returns the number of failed dispatches.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total.ErrorCount
}

// TotalPanics returns the number of recovered panics.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.panics
}

// TotalDuration returns the summed duration of every dispatch.
func (m *Metrics) TotalDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total.TotalDuration
}

// AverageDuration returns the mean dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total.AverageDuration()
}

// TypeStats returns a copy of the statistics of typeName, or nil.
func (m *Metrics) TypeStats(typeName string) *TypeMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tm, ok := m.types[typeName]
	if !ok {
		return nil
	}
	c := *tm
	return &c
}

// TopTypes returns the n most dispatched types, ties broken by name.
func (m *Metrics) TopTypes(n int) []*TypeMetrics {
	return m.rank(n, func(a, b *TypeMetrics) int {
		if c := cmp.Compare(b.DispatchCount, a.DispatchCount); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// SlowestTypes returns the n types with the highest mean duration.
func (m *Metrics) SlowestTypes(n int) []*TypeMetrics {
	return m.rank(n, func(a, b *TypeMetrics) int {
		if c := cmp.Compare(b.AverageDuration(), a.AverageDuration()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

func (m *Metrics) rank(n int, order func(a, b *TypeMetrics) int) []*TypeMetrics {
	m.mu.RLock()
	out := make([]*TypeMetrics, 0, len(m.types))
	for _, tm := range m.types {
		c := *tm
		out = append(out, &c)
	}
	m.mu.RUnlock()

	slices.SortFunc(out, order)
	return out[:min(max(n, 0), len(out))]
}

// Reset clears every statistic.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types = make(map[string]*TypeMetrics)
	m.total = TypeMetrics{}
	m.panics = 0
}

// MetricsSnapshot is a point-in-time view of the totals.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalErrors     uint64
	TotalPanics     uint64
	TotalDuration   time.Duration
	AverageDuration time.Duration
	TypeCount       int
	Timestamp       time.Time
}

// Snapshot returns the current totals.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MetricsSnapshot{
		TotalDispatches: m.total.DispatchCount,
		TotalErrors:     m.total.ErrorCount,
		TotalPanics:     m.panics,
		TotalDuration:   m.total.TotalDuration,
		AverageDuration: m.total.AverageDuration(),
		TypeCount:       len(m.types),
		Timestamp:       time.Now(),
	}
}
