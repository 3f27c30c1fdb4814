package fetcher

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/bipass-pathfinder/internal/graph"
)

func TestHTTPFetcher_FetchAdjacentBundle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Q42", r.URL.Query().Get("entity"))
		assert.Equal(t, "2", r.URL.Query().Get("depth"))
		_, _ = w.Write([]byte(`{
			"adjacent_entities": {"Q42": ["P31-Q5"]},
			"q_labels": {"Q42": "Douglas Adams"},
			"q_descriptions": {"Q42": "writer"},
			"p_labels": {"P31": "instance of"},
			"p_descriptions": {"P31": "that class of which this subject is a particular example"}
		}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, srv.URL)
	bundle, err := f.FetchAdjacentBundle("Q42", 2)
	require.NoError(t, err)

	assert.Equal(t, "Douglas Adams", bundle.QLabels["Q42"])
	assert.Equal(t, "instance of", bundle.PLabels["P31"])
	assert.Equal(t, []string{"P31-Q5"}, bundle.AdjacentEntities["Q42"])
}

func TestHTTPFetcher_FetchLabelDescription_ParseFailureReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, srv.URL)
	label, desc, err := f.FetchLabelDescription("Q42")

	require.NoError(t, err)
	assert.Empty(t, label)
	assert.Empty(t, desc)
}

func TestHTTPFetcher_FetchSemanticDistance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a", r.URL.Query().Get("string_a"))
		assert.Equal(t, "b", r.URL.Query().Get("string_b"))
		_, _ = w.Write([]byte(`{"distance": 0.37}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, srv.URL)
	d, err := f.FetchSemanticDistance("a", "b")

	require.NoError(t, err)
	assert.Equal(t, 0.37, d)
}

func TestHTTPFetcher_NonOKStatus_ReturnsFetchUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, srv.URL)
	_, err := f.FetchAdjacentBundle("Q42", 2)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERR_302_FETCH_UNAVAILABLE")
}

func TestHTTPFetcher_FetchAveragePropFrequency_EmptyPropsShortCircuits(t *testing.T) {
	f := NewHTTPFetcher("http://unused.invalid", "http://unused.invalid")
	freq, err := f.FetchAveragePropFrequency(nil)

	require.NoError(t, err)
	assert.Zero(t, freq)
}

func TestHTTPFetcher_GetJSON_RetriesTransientConnectionFailure(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// Simulate a transient connection drop on the first attempt by
			// hijacking and closing without writing a response.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		_, _ = w.Write([]byte(`{"distance": 0.5}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, srv.URL)
	f.retryConfig.InitialDelay = time.Millisecond
	f.retryConfig.MaxDelay = 5 * time.Millisecond

	d, err := f.FetchSemanticDistance("a", "b")

	require.NoError(t, err)
	assert.Equal(t, 0.5, d)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPFetcher_FetchAveragePropFrequency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "P31,P279", r.URL.Query().Get("props"))
		_, _ = w.Write([]byte(`{"average_frequency": 12.5}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, srv.URL)
	freq, err := f.FetchAveragePropFrequency([]graph.PID{"P31", "P279"})

	require.NoError(t, err)
	assert.Equal(t, 12.5, freq)
}
