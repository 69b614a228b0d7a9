package status

import (
	"strings"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/metric/noop"
)

func TestCounterCachedByName(t *testing.T) {
	r := NewRegistry(noop.NewMeterProvider().Meter("test"))

	a := r.Counter("engine.ticks", "ticks")
	b := r.Counter("engine.ticks", "ticks")
	if a != b {
		t.Error("Expected same counter pointer for same name")
	}

	a.Add(2)
	b.Add(3)
	if a.Value() != 5 {
		t.Errorf("Expected 5, got %d", a.Value())
	}
}

func TestGaugeAndLabel(t *testing.T) {
	r := NewRegistry(nil)

	g := r.Gauge("engine.fps", "fps")
	g.Set(59.5)
	if g.Value() != 59.5 {
		t.Errorf("Expected 59.5, got %f", g.Value())
	}

	l := r.Label("race.session")
	l.Set(strings.Repeat("x", MaxLabelLen+10))
	if len(l.Value()) != MaxLabelLen {
		t.Errorf("Expected label truncated to %d, got %d", MaxLabelLen, len(l.Value()))
	}
}

func TestSnapshotSorted(t *testing.T) {
	r := NewRegistry(nil)
	r.Counter("b.count", "").Add(1)
	r.Gauge("a.gauge", "").Set(1.5)
	r.Label("c.label").Set("on")

	snap := r.Snapshot()
	if len(snap) != 3 || r.Count() != 3 {
		t.Fatalf("Expected 3 metrics, got %d", len(snap))
	}

	want := []Metric{{"a.gauge", "1.50"}, {"b.count", "1"}, {"c.label", "on"}}
	for i := range want {
		if snap[i] != want[i] {
			t.Errorf("Entry %d: expected %+v, got %+v", i, want[i], snap[i])
		}
	}
}

func TestConcurrentCounter(t *testing.T) {
	r := NewRegistry(nil)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := r.Counter("shared", "")
			for j := 0; j < 100; j++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()

	if v := r.Counter("shared", "").Value(); v != 1000 {
		t.Errorf("Expected 1000, got %d", v)
	}
}
