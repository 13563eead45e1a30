package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emeklilik/sgkcalc/internal/bot"
	"github.com/emeklilik/sgkcalc/internal/domain"
	"github.com/emeklilik/sgkcalc/internal/eligibility"
	"github.com/emeklilik/sgkcalc/internal/scheduler"
)

var (
	_ eligibility.Observer    = (*Metrics)(nil)
	_ bot.Observer            = (*Metrics)(nil)
	_ scheduler.PurgeObserver = (*Metrics)(nil)
)

func TestMetrics_Engine(t *testing.T) {
	m := New()

	m.RulesExtracted(domain.Status4A, 12, 3*time.Millisecond)
	assert.Equal(t, 12.0, testutil.ToFloat64(m.RuleCount.WithLabelValues("4A")))

	eligible := &domain.Report{Full: domain.TrackOutcome{
		Rule:   &domain.ExtractedRule{},
		Result: &domain.EligibilityResult{Eligible: true},
	}}
	waiting := &domain.Report{Full: domain.TrackOutcome{
		Rule:   &domain.ExtractedRule{},
		Result: &domain.EligibilityResult{},
	}}
	m.CheckCompleted(domain.Status4A, eligible)
	m.CheckCompleted(domain.Status4A, waiting)
	m.CheckCompleted(domain.Status4B, &domain.Report{})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Checks.WithLabelValues("4A", "eligible")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Checks.WithLabelValues("4A", "not_eligible")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Checks.WithLabelValues("4B", "no_rule")))

	m.CheckRejected(&domain.FieldError{Field: "birth_date", Err: domain.ErrUnparseableDate})
	m.CheckRejected(errors.New("other"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckRejections.WithLabelValues("birth_date")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckRejections.WithLabelValues("unknown")))
}

func TestMetrics_BotAndPurge(t *testing.T) {
	m := New()
	m.UpdateHandled(bot.OutcomeOK)
	m.UpdateHandled(bot.OutcomeOK)
	m.UpdateHandled(bot.OutcomeIgnored)
	m.SessionsPurged(3)
	m.SessionsPurged(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Updates.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Updates.WithLabelValues("ignored")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PurgedSessions))
}

func TestMetrics_StatusLabelsStayBounded(t *testing.T) {
	m := New()
	for _, status := range []domain.StatusCode{"4a", "x1", "x2", ""} {
		m.CheckCompleted(status, &domain.Report{})
	}
	m.CheckCompleted(domain.Status4C, &domain.Report{})

	assert.Equal(t, 4.0, testutil.ToFloat64(m.Checks.WithLabelValues("unknown", "no_rule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Checks.WithLabelValues("4C", "no_rule")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Checks))
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.UpdateHandled("ok")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Updates.WithLabelValues("ok")))
}

func TestRouter_Metrics(t *testing.T) {
	m := New()
	m.UpdateHandled("ok")
	router := NewRouter(m, NewHealth())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sgkcalc_bot_updates_total{outcome="ok"} 1`)
}

func TestRouter_Healthz(t *testing.T) {
	health := NewHealth()
	router := NewRouter(New(), health)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	health.RegisterCheck("sessions", func() error { return nil })
	health.RegisterCheck("rules", func() error { return errors.New("no rules loaded") })

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "up", body.Checks["sessions"])
	assert.Equal(t, "down: no rules loaded", body.Checks["rules"])
}

func TestRouter_UnknownPath(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(New(), NewHealth()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
