package status

import (
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
)

// Registry is the central metrics facade
// Systems cache pointers at construction; update loops write atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Snapshot renders every metric as a string keyed by name, for the debug overlay
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.Bools.Count()+r.Ints.Count()+r.Floats.Count()+r.Strings.Count())
	r.Bools.Range(func(k string, p *atomic.Bool) { out[k] = strconv.FormatBool(p.Load()) })
	r.Ints.Range(func(k string, p *atomic.Int64) { out[k] = strconv.FormatInt(p.Load(), 10) })
	r.Floats.Range(func(k string, p *AtomicFloat) { out[k] = strconv.FormatFloat(p.Get(), 'f', 2, 64) })
	r.Strings.Range(func(k string, p *AtomicString) { out[k] = p.Load() })
	return out
}

// MetricMap is a thread-safe registry for metrics of type T
// Registration takes the mutex; cached pointer access is lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the metric pointer for key, creating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	if ptr, ok := m.items[key]; ok {
		m.mu.RUnlock()
		return ptr
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr := new(T)
	m.items[key] = ptr
	return ptr
}

// Range visits metrics in sorted key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, m.items[k])
	}
}

func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
