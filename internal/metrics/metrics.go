// Package metrics records minirt run statistics in a private Prometheus
// registry and exports them in the text exposition format.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/minirt"
)

const namespace = "minirt"

// Recorder owns the registry and collectors for one process.
//
// Thread safety: Recorder is safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	pushed      *prometheus.CounterVec
	popped      *prometheus.CounterVec
	stops       *prometheus.CounterVec
	items       *prometheus.CounterVec
	pixels      *prometheus.CounterVec
	workerItems *prometheus.GaugeVec
	duration    *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	labels := []string{"strategy"}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		pushed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_pushed_total",
			Help:      "Jobs pushed onto the tile queue, including stop markers.",
		}, labels),
		popped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_popped_total",
			Help:      "Jobs popped from the tile queue, including stop markers.",
		}, labels),
		stops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stop_markers_total",
			Help:      "Termination markers enqueued.",
		}, labels),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_items_total",
			Help:      "Tiles or row bands issued to workers.",
		}, labels),
		pixels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pixels_rendered_total",
			Help:      "Pixels computed by the render function.",
		}, labels),
		workerItems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_items",
			Help:      "Work items completed by each worker in the last run.",
		}, []string{"strategy", "worker"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Wall time from spawning the workers to joining them.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		}, labels),
	}

	r.registry.MustRegister(r.pushed, r.popped, r.stops, r.items, r.pixels, r.workerItems, r.duration)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records one completed run.
func (r *Recorder) Observe(st minirt.RunStats) {
	strategy := st.Strategy.String()

	r.pushed.WithLabelValues(strategy).Add(float64(st.Pushed))
	r.popped.WithLabelValues(strategy).Add(float64(st.Popped))
	r.stops.WithLabelValues(strategy).Add(float64(st.Stops))
	r.items.WithLabelValues(strategy).Add(float64(st.Items))
	r.pixels.WithLabelValues(strategy).Add(float64(st.Pixels))
	r.duration.WithLabelValues(strategy).Observe(st.Elapsed.Seconds())

	for id, n := range st.WorkerItems {
		r.workerItems.WithLabelValues(strategy, strconv.Itoa(id)).Set(float64(n))
	}
}

// WriteTextfile writes the current metrics to path in the format read by
// the node exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
