// Package metrics exposes engine and bot activity to Prometheus.
package metrics

import (
	"errors"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

// Metrics holds the collectors. Each instance owns its registry so tests
// and multiple engines do not collide on the default one.
type Metrics struct {
	Registry *prometheus.Registry

	RuleCount          *prometheus.GaugeVec
	ExtractionDuration *prometheus.HistogramVec
	Checks             *prometheus.CounterVec
	CheckRejections    *prometheus.CounterVec
	Updates            *prometheus.CounterVec
	PurgedSessions     prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		RuleCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sgkcalc_rules_extracted",
			Help: "Number of rules extracted per status table",
		}, []string{"status"}),
		ExtractionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sgkcalc_rule_extraction_duration_seconds",
			Help:    "Duration of rule extraction for one status table",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"status"}),
		Checks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sgkcalc_checks_total",
			Help: "Eligibility checks by status and full-track outcome",
		}, []string{"status", "outcome"}),
		CheckRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sgkcalc_check_rejections_total",
			Help: "Eligibility checks rejected for invalid input, by field",
		}, []string{"field"}),
		Updates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sgkcalc_bot_updates_total",
			Help: "Telegram updates handled by outcome",
		}, []string{"outcome"}),
		PurgedSessions: factory.NewCounter(prometheus.CounterOpts{
			Name: "sgkcalc_sessions_purged_total",
			Help: "Idle conversation sessions removed",
		}),
	}
}

// RulesExtracted records the size and cost of one extraction.
func (m *Metrics) RulesExtracted(status domain.StatusCode, count int, elapsed time.Duration) {
	m.RuleCount.WithLabelValues(statusLabel(status)).Set(float64(count))
	m.ExtractionDuration.WithLabelValues(statusLabel(status)).Observe(elapsed.Seconds())
}

// CheckCompleted counts a check as eligible, not_eligible or no_rule
// based on the full track.
func (m *Metrics) CheckCompleted(status domain.StatusCode, report *domain.Report) {
	outcome := "no_rule"
	if report != nil && report.Full.Matched() {
		outcome = "not_eligible"
		if report.Full.Result.Eligible {
			outcome = "eligible"
		}
	}
	m.Checks.WithLabelValues(statusLabel(status), outcome).Inc()
}

// statusLabel keeps the status label set to the known codes.
func statusLabel(status domain.StatusCode) string {
	if slices.Contains(domain.AllStatuses, status) {
		return string(status)
	}
	return "unknown"
}

func (m *Metrics) CheckRejected(err error) {
	field := "unknown"
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		field = fe.Field
	}
	m.CheckRejections.WithLabelValues(field).Inc()
}

func (m *Metrics) UpdateHandled(outcome string) {
	m.Updates.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SessionsPurged(n int) {
	m.PurgedSessions.Add(float64(n))
}
