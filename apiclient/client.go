package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/usagelens/usagelens/engine"
)

// ============================================================================
// AGGREGATION API CLIENT — Fetches RowSets from the external aggregator
// ============================================================================
// This is the ONLY package that makes network calls. The engine never
// fetches; it receives RowSets from here.
//
// Scatter views fetch X, Y, and bubble metrics independently, so a Guard
// tags each in-flight request batch with a generation token and refuses to
// hand back RowSets from a superseded generation. MergePaired must never
// see mismatched-generation inputs.
// ============================================================================

// ErrStaleGeneration is returned when results arrive for a parameter
// generation that has since been superseded.
var ErrStaleGeneration = errors.New("apiclient: stale parameter generation")

// Query selects one metric/dimension aggregation.
type Query struct {
	Metric  string              `json:"metric"`
	GroupBy string              `json:"group_by"`
	SplitBy string              `json:"split_by,omitempty"`
	Filters map[string][]string `json:"filters,omitempty"`
	Start   time.Time           `json:"start,omitempty"`
	End     time.Time           `json:"end,omitempty"`
}

// Client talks to the aggregation API over HTTP JSON.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the client logger. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// New creates a Client for the aggregation API at baseURL.
func New(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch runs one aggregation query and returns its RowSet.
func (c *Client) Fetch(ctx context.Context, q Query) (*engine.RowSet, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/aggregate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().
		Str("metric", q.Metric).
		Str("group_by", q.GroupBy).
		Str("split_by", q.SplitBy).
		Msg("fetching rowset")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aggregation request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read aggregation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aggregation API returned %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var rs engine.RowSet
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("parse aggregation response: %w", err)
	}

	c.log.Debug().
		Str("metric", rs.Metadata.Metric).
		Int("rows", len(rs.Rows)).
		Int("groups", len(rs.Metadata.Groups)).
		Msg("rowset received")

	return &rs, nil
}

// FetchPair fetches the X and Y metrics of a paired comparison concurrently.
// The gen token must still be current when both responses are in; otherwise
// the results are discarded and ErrStaleGeneration is returned.
func (c *Client) FetchPair(ctx context.Context, guard *Guard, gen Generation, qx, qy Query) (x, y *engine.RowSet, err error) {
	sets, err := c.fetchBatch(ctx, guard, gen, []Query{qx, qy})
	if err != nil {
		return nil, nil, err
	}
	return sets[0], sets[1], nil
}

// FetchTriple fetches X, Y, and bubble metrics concurrently under one
// generation token.
func (c *Client) FetchTriple(ctx context.Context, guard *Guard, gen Generation, qx, qy, qb Query) (x, y, bubble *engine.RowSet, err error) {
	sets, err := c.fetchBatch(ctx, guard, gen, []Query{qx, qy, qb})
	if err != nil {
		return nil, nil, nil, err
	}
	return sets[0], sets[1], sets[2], nil
}

func (c *Client) fetchBatch(ctx context.Context, guard *Guard, gen Generation, queries []Query) ([]*engine.RowSet, error) {
	if !guard.Current(gen) {
		return nil, ErrStaleGeneration
	}

	sets := make([]*engine.RowSet, len(queries))
	errs := make([]error, len(queries))
	done := make(chan int, len(queries))

	for i, q := range queries {
		go func(i int, q Query) {
			sets[i], errs[i] = c.Fetch(ctx, q)
			done <- i
		}(i, q)
	}
	for range queries {
		<-done
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	// The parameters may have changed while requests were in flight.
	if !guard.Current(gen) {
		c.log.Debug().Str("generation", gen.String()).Msg("discarding stale rowsets")
		return nil, ErrStaleGeneration
	}
	return sets, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
