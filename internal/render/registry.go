package render

import (
	"errors"
	"io"
	"sort"
	"sync"

	"MetalPulse/internal/domain/repository"
	"MetalPulse/internal/view"
	applogger "MetalPulse/pkg/logger"

	"github.com/go-echarts/go-echarts/v2/charts"
)

// Chart events reported to metrics.
const (
	EventMount   = "mount"
	EventDestroy = "destroy"
)

// Instance is a chart mounted into a slot.
type Instance struct {
	Slot  string
	Seq   uint64
	Spec  view.ChartSpec
	chart *charts.Line

	mu        sync.Mutex
	destroyed bool
}

// ErrDestroyed is returned when rendering a chart that was replaced.
var ErrDestroyed = errors.New("chart instance destroyed")

// Render writes the chart as a standalone HTML page.
func (i *Instance) Render(w io.Writer) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.destroyed {
		return ErrDestroyed
	}
	return i.chart.Render(w)
}

// Destroyed reports whether the instance was replaced.
func (i *Instance) Destroyed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.destroyed
}

func (i *Instance) destroy() {
	i.mu.Lock()
	i.destroyed = true
	i.chart = nil
	i.mu.Unlock()
}

// Registry owns at most one live chart per slot.
type Registry struct {
	mu      sync.RWMutex
	slots   map[string]*Instance
	seq     uint64
	opts    ChartOptions
	metrics repository.Metrics
	log     *applogger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(o ChartOptions, metrics repository.Metrics, l *applogger.Logger) *Registry {
	if metrics == nil {
		metrics = repository.NopMetrics{}
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &Registry{slots: make(map[string]*Instance), opts: o, metrics: metrics, log: l}
}

// Mount destroys the slot's current chart, if any, then builds and stores a
// new one from spec.
func (r *Registry) Mount(spec view.ChartSpec) *Instance {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.slots[spec.Slot]; ok {
		prev.destroy()
		delete(r.slots, spec.Slot)
		r.metrics.RecordChart(spec.Slot, EventDestroy)
		r.log.Debug("chart destroyed", applogger.String("slot", spec.Slot), applogger.Int("seq", int(prev.Seq)))
	}

	r.seq++
	inst := &Instance{Slot: spec.Slot, Seq: r.seq, Spec: spec, chart: NewLineChart(spec, r.opts)}
	r.slots[spec.Slot] = inst
	r.metrics.RecordChart(spec.Slot, EventMount)
	return inst
}

// MountAll mounts every spec in order.
func (r *Registry) MountAll(specs []view.ChartSpec) []*Instance {
	out := make([]*Instance, 0, len(specs))
	for _, s := range specs {
		out = append(out, r.Mount(s))
	}
	return out
}

// Get returns the live chart of a slot.
func (r *Registry) Get(slot string) (*Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.slots[slot]
	return inst, ok
}

// Live lists the slots holding a chart.
func (r *Registry) Live() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.slots))
	for slot := range r.slots {
		out = append(out, slot)
	}
	sort.Strings(out)
	return out
}
