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

func TestObserverHooks(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Resolved("keywords")
	m.Resolved("keywords")
	m.RemoteFailed("status")
	m.SetStoreRecords(42)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CopilotResolutions.WithLabelValues("keywords")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CopilotRemoteFailures.WithLabelValues("status")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.StoreRecords))
}

func TestHandler_Exposes(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.SetStoreRecords(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "voice_trends_store_records 3")
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
