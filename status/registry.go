package status

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/lixenwraith/backrooms/event"
)

// Registry holds session counters and gauges
// Producers cache metric pointers at setup and write atomics per frame
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
}

func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
	}
}

// TotalCount returns metrics across both kinds
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Gauges.Count()
}

// CountEvents subscribes to every bus event and counts it as "event.<Type>"
func (r *Registry) CountEvents(bus *event.Bus) event.SubscriptionID {
	return bus.SubscribeAll(func(ev event.Event) error {
		r.Counters.Get("event." + ev.Type.String()).Add(1)
		return nil
	})
}

// Lines renders every metric as "name=value", counters first, each group sorted
func (r *Registry) Lines() []string {
	out := make([]string, 0, r.TotalCount())
	r.Counters.Range(func(k string, v *atomic.Int64) {
		out = append(out, k+"="+strconv.FormatInt(v.Load(), 10))
	})
	r.Gauges.Range(func(k string, g *Gauge) {
		out = append(out, fmt.Sprintf("%s=%.2f", k, g.Get()))
	})
	return out
}
