// Package status is the in-process metric registry shown on the diagnostic overlay
// and mirrored to OpenTelemetry instruments
package status

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/lixenwraith/vi-racer"

// MaxLabelLen bounds label values so overlay rows stay one line
const MaxLabelLen = 32

// Registry hands out named metrics
// Hot paths cache Counter/Gauge pointers at construction and write lock-free; every
// write is mirrored to the OTel meter, which is a no-op unless a provider is installed
type Registry struct {
	meter metric.Meter

	mu       sync.RWMutex
	counters map[string]*Counter
	gauges   map[string]*Gauge
	labels   map[string]*Label
}

// NewRegistry creates a registry reporting to meter; nil uses the global OTel meter
func NewRegistry(meter metric.Meter) *Registry {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}
	return &Registry{
		meter:    meter,
		counters: make(map[string]*Counter),
		gauges:   make(map[string]*Gauge),
		labels:   make(map[string]*Label),
	}
}

// Counter is a monotonically increasing metric
type Counter struct {
	n    atomic.Int64
	inst metric.Int64Counter
}

// Add increments the counter
func (c *Counter) Add(n int64) {
	c.n.Add(n)
	if c.inst != nil {
		c.inst.Add(context.Background(), n)
	}
}

// Value returns the local count
func (c *Counter) Value() int64 { return c.n.Load() }

// Gauge is a last-value float metric stored as raw bits
type Gauge struct {
	bits atomic.Uint64
	inst metric.Float64Gauge
}

// Set records the current value
func (g *Gauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
	if g.inst != nil {
		g.inst.Record(context.Background(), v)
	}
}

// Value returns the last recorded value
func (g *Gauge) Value() float64 { return math.Float64frombits(g.bits.Load()) }

// Label is a short string metric, local only
type Label struct {
	ptr atomic.Pointer[string]
}

// Set stores the value, truncated to MaxLabelLen bytes
func (l *Label) Set(v string) {
	if len(v) > MaxLabelLen {
		v = v[:MaxLabelLen]
	}
	l.ptr.Store(&v)
}

// Value returns the current value, empty if never set
func (l *Label) Value() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// Counter returns the named counter, creating it on first use
// An instrument creation failure degrades to local-only counting
func (r *Registry) Counter(name, description string) *Counter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.counters[name]; ok {
		return c
	}
	c := &Counter{}
	if inst, err := r.meter.Int64Counter(name, metric.WithDescription(description)); err == nil {
		c.inst = inst
	}
	r.counters[name] = c
	return c
}

// Gauge returns the named gauge, creating it on first use
func (r *Registry) Gauge(name, description string) *Gauge {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.gauges[name]; ok {
		return g
	}
	g := &Gauge{}
	if inst, err := r.meter.Float64Gauge(name, metric.WithDescription(description)); err == nil {
		g.inst = inst
	}
	r.gauges[name] = g
	return g
}

// Label returns the named label, creating it on first use
func (r *Registry) Label(name string) *Label {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.labels[name]; ok {
		return l
	}
	l := &Label{}
	r.labels[name] = l
	return l
}

// Metric is one formatted entry for display
type Metric struct {
	Name  string
	Value string
}

// Snapshot returns every metric formatted and sorted by name
func (r *Registry) Snapshot() []Metric {
	r.mu.RLock()
	out := make([]Metric, 0, len(r.counters)+len(r.gauges)+len(r.labels))
	for name, c := range r.counters {
		out = append(out, Metric{Name: name, Value: strconv.FormatInt(c.Value(), 10)})
	}
	for name, g := range r.gauges {
		out = append(out, Metric{Name: name, Value: fmt.Sprintf("%.2f", g.Value())})
	}
	for name, l := range r.labels {
		out = append(out, Metric{Name: name, Value: l.Value()})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns the number of registered metrics
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.counters) + len(r.gauges) + len(r.labels)
}
