// Package metrics counts the work of one compile run. The run is a batch
// job, so the registry is written once to a node-exporter textfile instead
// of being served.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nn2go"

// Recorder is safe to use as a nil pointer, which records nothing.
type Recorder struct {
	registry  *prometheus.Registry
	drawn     prometheus.Counter
	rejected  prometheus.Counter
	evalTime  prometheus.Histogram
	artifacts *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		drawn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_drawn_total",
			Help:      "Random input samples drawn for test cases.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_rejected_total",
			Help:      "Samples rejected because an output was not finite.",
		}),
		evalTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_seconds",
			Help:      "Time the reference evaluator took for one sample.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		artifacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_written_total",
			Help:      "Files published, by kind.",
		}, []string{"kind"}),
	}
	r.registry.MustRegister(r.drawn, r.rejected, r.evalTime, r.artifacts)
	return r
}

func (r *Recorder) SampleDrawn() {
	if r != nil {
		r.drawn.Inc()
	}
}

func (r *Recorder) SampleRejected() {
	if r != nil {
		r.rejected.Inc()
	}
}

func (r *Recorder) ObserveEval(d time.Duration) {
	if r != nil {
		r.evalTime.Observe(d.Seconds())
	}
}

// ArtifactWritten counts one published file. Kind is "code" or "test".
func (r *Recorder) ArtifactWritten(kind string) {
	if r != nil {
		r.artifacts.WithLabelValues(kind).Inc()
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteFile writes every metric in the text exposition format. The file is
// replaced atomically.
func (r *Recorder) WriteFile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return errors.Wrap(prometheus.WriteToTextfile(path, r.registry), "write metrics")
}
