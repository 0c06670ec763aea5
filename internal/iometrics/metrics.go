// Package iometrics collects refresh metrics with Prometheus client and
// pushes them to a Pushgateway. A nil *Metrics is valid and records
// nothing, so callers do not need to check if metrics are enabled.
package iometrics

import (
	"log/slog"
	"time"

	"github.com/gnames/trialwh/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics keeps refresh collectors in a private registry.
type Metrics struct {
	pushURL string
	jobName string
	reg     *prometheus.Registry

	stages        *prometheus.CounterVec
	stageDuration *prometheus.SummaryVec
	records       *prometheus.CounterVec
	quality       prometheus.Gauge
	lastSuccess   prometheus.Gauge
}

// New creates collectors and registers them. Push does nothing when
// cfg.PushURL is empty, collectors still work.
func New(cfg config.MetricsConfig) (*Metrics, error) {
	jobName := cfg.JobName
	if jobName == "" {
		jobName = config.AppName
	}

	res := &Metrics{
		pushURL: cfg.PushURL,
		jobName: jobName,
		reg:     prometheus.NewRegistry(),
		stages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trialwh_stage_total",
				Help: "Refresh stage executions by stage and status.",
			},
			[]string{"stage", "status"},
		),
		stageDuration: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "trialwh_stage_duration_seconds",
				Help:       "Duration of refresh stages in seconds.",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"stage", "status"},
		),
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trialwh_records_total",
				Help: "Records by kind (raw, invalid, duplicate, trial, fact...).",
			},
			[]string{"kind"},
		),
		quality: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trialwh_quality_score",
			Help: "Quality score of the last staging trial set, 0-100.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trialwh_last_success_timestamp_seconds",
			Help: "Unix time of the last successful refresh.",
		}),
	}

	collectors := map[string]prometheus.Collector{
		"trialwh_stage_total":                    res.stages,
		"trialwh_stage_duration_seconds":         res.stageDuration,
		"trialwh_records_total":                  res.records,
		"trialwh_quality_score":                  res.quality,
		"trialwh_last_success_timestamp_seconds": res.lastSuccess,
	}
	for name, c := range collectors {
		if err := res.reg.Register(c); err != nil {
			return nil, RegisterError(name, err)
		}
	}
	return res, nil
}

// Registry returns the registry with all trialwh collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// ObserveStage records one execution of a refresh stage.
func (m *Metrics) ObserveStage(stage, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.stages.WithLabelValues(stage, status).Inc()
	m.stageDuration.WithLabelValues(stage, status).Observe(d.Seconds())
}

// AddRecords adds n records of a kind.
func (m *Metrics) AddRecords(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.records.WithLabelValues(kind).Add(float64(n))
}

// SetQuality sets the quality score of the last run.
func (m *Metrics) SetQuality(score float64) {
	if m == nil {
		return
	}
	m.quality.Set(score)
}

// MarkSuccess stores the time of a successful refresh.
func (m *Metrics) MarkSuccess(t time.Time) {
	if m == nil {
		return
	}
	m.lastSuccess.Set(float64(t.Unix()))
}

// Push sends collected metrics to the Pushgateway.
func (m *Metrics) Push() error {
	if m == nil || m.pushURL == "" {
		return nil
	}
	err := push.New(m.pushURL, m.jobName).Gatherer(m.reg).Push()
	if err != nil {
		return PushError(m.pushURL, err)
	}
	slog.Debug("Metrics pushed", "url", m.pushURL, "job", m.jobName)
	return nil
}
