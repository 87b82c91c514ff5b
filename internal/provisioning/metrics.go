package provisioning

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects the measurements of one deploy run.
// Each run gets its own registry so the result can be written as a
// node_exporter textfile or pushed as a single job.
type Metrics struct {
	Registry *prometheus.Registry

	phaseDuration  *prometheus.GaugeVec
	phaseResult    *prometheus.GaugeVec
	outcomes       *prometheus.CounterVec
	artifactBytes  prometheus.Gauge
	artifactFiles  prometheus.Gauge
	lastSuccessful prometheus.Gauge
}

// NewMetrics creates the run metrics on a fresh registry.
// A non-empty job is attached to every series as the job label.
func NewMetrics(job string) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		phaseDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "lambdeploy",
				Subsystem: "phase",
				Name:      "duration_seconds",
				Help:      "Duration of each deploy phase in seconds",
			},
			[]string{"phase"},
		),
		phaseResult: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "lambdeploy",
				Subsystem: "phase",
				Name:      "success",
				Help:      "Whether the phase succeeded (1) or failed (0)",
			},
			[]string{"phase"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lambdeploy",
				Subsystem: "resource",
				Name:      "outcomes_total",
				Help:      "Ensure and act outcomes by resource type",
			},
			[]string{"resource", "outcome"},
		),
		artifactBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lambdeploy",
			Subsystem: "artifact",
			Name:      "size_bytes",
			Help:      "Size of the uploaded archive in bytes",
		}),
		artifactFiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lambdeploy",
			Subsystem: "artifact",
			Name:      "files",
			Help:      "Number of files in the archive",
		}),
		lastSuccessful: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lambdeploy",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful deploy",
		}),
	}
	var reg prometheus.Registerer = m.Registry
	if job != "" {
		reg = prometheus.WrapRegistererWith(prometheus.Labels{"job": job}, m.Registry)
	}
	reg.MustRegister(
		m.phaseDuration,
		m.phaseResult,
		m.outcomes,
		m.artifactBytes,
		m.artifactFiles,
		m.lastSuccessful,
	)
	return m
}

// ObservePhase records a phase's duration and result.
func (m *Metrics) ObservePhase(phase string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(phase).Set(d.Seconds())
	success := 1.0
	if err != nil {
		success = 0
	}
	m.phaseResult.WithLabelValues(phase).Set(success)
}

// ObserveOutcome counts an ensure or act outcome for a resource type.
func (m *Metrics) ObserveOutcome(resource string, o Outcome) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(resource, o.String()).Inc()
}

// ObserveArtifact records the archive size and file count.
func (m *Metrics) ObserveArtifact(size int64, files int) {
	if m == nil {
		return
	}
	m.artifactBytes.Set(float64(size))
	m.artifactFiles.Set(float64(files))
}

// MarkSuccess stamps the run as successful at t.
func (m *Metrics) MarkSuccess(t time.Time) {
	if m == nil {
		return
	}
	m.lastSuccessful.Set(float64(t.Unix()))
}

// WriteTextfile writes the metrics in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
