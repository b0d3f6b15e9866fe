package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usagelens/usagelens/engine"
)

// ============================================================================
// AGGREGATION CLIENT TESTS
// ============================================================================

func fakeAggregator(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/aggregate", r.URL.Path)

		var q Query
		require.NoError(t, json.NewDecoder(r.Body).Decode(&q))

		rs := engine.RowSet{
			Rows: []engine.Row{{Group: "opus", Value: 10}, {Group: "haiku", Value: 2}},
			Metadata: engine.RowSetMetadata{
				Metric:   q.Metric,
				GroupBy:  q.GroupBy,
				RowCount: 2,
				Total:    12,
				Groups:   []string{"opus", "haiku", "sonnet"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(rs))
	}))
}

func TestFetch(t *testing.T) {
	srv := fakeAggregator(t, nil)
	defer srv.Close()

	c := New(srv.URL)
	rs, err := c.Fetch(context.Background(), Query{Metric: "cost", GroupBy: "model"})
	require.NoError(t, err)

	assert.Equal(t, "cost", rs.Metadata.Metric)
	assert.Len(t, rs.Rows, 2)
	assert.Equal(t, []string{"opus", "haiku", "sonnet"}, rs.Metadata.Groups,
		"zero-value groups survive in the universe")
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Fetch(context.Background(), Query{Metric: "cost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchPairSameGeneration(t *testing.T) {
	var hits atomic.Int64
	srv := fakeAggregator(t, &hits)
	defer srv.Close()

	c := New(srv.URL)
	var guard Guard
	gen := guard.Next()

	x, y, err := c.FetchPair(context.Background(), &guard, gen,
		Query{Metric: "cost", GroupBy: "model"},
		Query{Metric: "tokens", GroupBy: "model"})
	require.NoError(t, err)
	assert.Equal(t, "cost", x.Metadata.Metric)
	assert.Equal(t, "tokens", y.Metadata.Metric)
	assert.Equal(t, int64(2), hits.Load())
}

func TestFetchPairStaleGeneration(t *testing.T) {
	srv := fakeAggregator(t, nil)
	defer srv.Close()

	c := New(srv.URL)
	var guard Guard
	gen := guard.Next()
	guard.Next() // parameters changed; gen is superseded

	_, _, err := c.FetchPair(context.Background(), &guard, gen,
		Query{Metric: "cost"}, Query{Metric: "tokens"})
	assert.ErrorIs(t, err, ErrStaleGeneration)
}

func TestFetchTriple(t *testing.T) {
	srv := fakeAggregator(t, nil)
	defer srv.Close()

	c := New(srv.URL)
	var guard Guard
	gen := guard.Next()

	x, y, b, err := c.FetchTriple(context.Background(), &guard, gen,
		Query{Metric: "cost"}, Query{Metric: "tokens"}, Query{Metric: "requests"})
	require.NoError(t, err)
	assert.Equal(t, "cost", x.Metadata.Metric)
	assert.Equal(t, "tokens", y.Metadata.Metric)
	assert.Equal(t, "requests", b.Metadata.Metric)
}

func TestGuardCurrent(t *testing.T) {
	var guard Guard
	first := guard.Next()
	assert.True(t, guard.Current(first))

	second := guard.Next()
	assert.False(t, guard.Current(first), "a new generation invalidates the old one")
	assert.True(t, guard.Current(second))
}
