package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qraqula/graphmcp/internal/graphql"
)

func TestObserve(t *testing.T) {
	m := New()
	m.Observe("schema", nil, 20*time.Millisecond)
	m.Observe("schema", nil, 30*time.Millisecond)
	m.Observe("query", &graphql.HTTPError{StatusCode: 500}, time.Millisecond)
	m.Observe("query", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("schema", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("query", "UpstreamHTTPError")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("query", "Internal")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestObserveNil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Observe("search", nil, time.Second) })
}

func TestHandler(t *testing.T) {
	m := New()
	m.Observe("search", nil, time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `graphmcp_operations_total{operation="search",outcome="ok"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
