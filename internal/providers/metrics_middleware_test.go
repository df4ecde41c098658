package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockMetrics struct {
	requestMethod   string
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
}

func (m *mockMetrics) IncRequestsTotal(method, endpoint string, status int) {
	m.requestMethod = method
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration)     { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits()                                        {}
func (m *mockMetrics) IncCacheMisses()                                      {}
func (m *mockMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (m *mockMetrics) IncPersistenceFailures(_ string)                      {}
func (m *mockMetrics) SetRecordsTotal(_ string, _ int)                      {}
func (m *mockMetrics) IncScans(_ string)                                    {}

// local mock logger to avoid import cycle with testutil
type providerTestLogger struct {
	debugCalls int
}

func (m *providerTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *providerTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *providerTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) { m.debugCalls++ }
func (m *providerTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *providerTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *providerTestLogger) Close()                                        {}

func TestMetricsMiddleware_CapturesStatusAndEndpoint(t *testing.T) {
	metrics := &mockMetrics{}
	logger := &providerTestLogger{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	mw := MetricsMiddleware(metrics, logger, handler)

	req := httptest.NewRequest(http.MethodPost, "/pets", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "POST", metrics.requestMethod)
	assert.Equal(t, "/pets", metrics.requestEndpoint)
	assert.Equal(t, http.StatusCreated, metrics.requestStatus)
	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, 1, metrics.durationCalls)
	assert.Equal(t, 1, logger.debugCalls)
}

func TestMetricsMiddleware_DefaultStatusOK(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mw := MetricsMiddleware(metrics, &providerTestLogger{}, handler)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
	assert.Equal(t, "/dashboard", metrics.requestEndpoint)
}
