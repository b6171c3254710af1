package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.UserRegistered()
	m.Login(true)
	m.Login(false)
	m.Login(false)
	m.PostCreated()
	m.SetQueueDepth(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UsersRegistered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Logins.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PostsCreated))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ActivityQueueDepth))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.UserRegistered()
		m.Login(true)
		m.PostCreated()
		m.SetQueueDepth(1)
		m.ObserveRequest("/", "GET", "200", 0.1)
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.PostCreated()
	m.ObserveRequest("/api/v1/posts", "GET", "200", 0.01)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "posts_created_total 1")
	assert.Contains(t, string(body), `http_request_duration_seconds_count{method="GET",route="/api/v1/posts",status="200"} 1`)
}
