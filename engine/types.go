package engine

// ============================================================================
// USAGELENS ENGINE TYPES — Analytic Result Transformation
// ============================================================================
// The aggregation API returns flat RowSets; the engine reshapes them into
// the exact structures a chart or table needs: dense pivot matrices, ranked
// subsets, paired scatter points, normalized radar axes, statistics.
//
// Every entity here is transient — recomputed per render pass, never stored.
// Optional numerics are *float64: nil is the documented sentinel for
// "not computable", never NaN or Inf.
// ============================================================================

// ============================================================================
// ROWSET — Input contract from the aggregation API
// ============================================================================

// Row is a single server-aggregated data point.
// Group is the primary dimension value (a date, model name, project);
// Split is the optional secondary dimension value, empty when the query
// had no split dimension.
type Row struct {
	Group string  `json:"group"`
	Split string  `json:"split,omitempty"`
	Value float64 `json:"value"`
}

// RowSetMetadata carries the canonical, deduplicated key universes used for
// zero-filling. Groups/Splits may include keys absent from the rows
// (zero-value groups) — they must not be inferred from rows alone.
type RowSetMetadata struct {
	Metric   string   `json:"metric"`
	GroupBy  string   `json:"group_by"`
	SplitBy  string   `json:"split_by,omitempty"`
	Total    float64  `json:"total"`
	RowCount int      `json:"row_count"`
	Groups   []string `json:"groups"`
	Splits   []string `json:"splits,omitempty"`
}

// RowSet is the flat, server-aggregated result for one metric/dimension
// selection. Immutable once received — the engine never mutates it.
type RowSet struct {
	Rows     []Row          `json:"rows"`
	Metadata RowSetMetadata `json:"metadata"`
}

// HasSplit reports whether the RowSet carries a secondary dimension.
func (rs *RowSet) HasSplit() bool {
	return rs.Metadata.SplitBy != ""
}

// ============================================================================
// SERIES & PIVOT — Chart-ready shapes
// ============================================================================

// SeriesPoint is one entry of a plain (unsplit) series.
type SeriesPoint struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// PivotRow is one dense row of a group×split matrix.
// Invariant: Values has an entry for every split key of the parent Pivot,
// defaulting to 0 — the matrix is never sparse, so charts never silently
// omit a series.
type PivotRow struct {
	Group  string             `json:"group"`
	Values map[string]float64 `json:"values"`
	Total  float64            `json:"total"`
}

// Pivot is a dense group×split matrix plus the split universe that defines
// its columns.
type Pivot struct {
	GroupBy string     `json:"group_by"`
	Splits  []string   `json:"splits"`
	Rows    []PivotRow `json:"rows"`
}

// ============================================================================
// PAIRED & PLOTTED POINTS — Scatter/bubble shapes
// ============================================================================

// PairedPoint joins two independently fetched metrics on a shared group key.
// Built only for groups present in BOTH input RowSets (inner join).
// Ratio is RawY/RawX, nil when RawX is zero.
type PairedPoint struct {
	Group     string   `json:"group"`
	RawX      float64  `json:"raw_x"`
	RawY      float64  `json:"raw_y"`
	RawBubble float64  `json:"raw_bubble"`
	Ratio     *float64 `json:"ratio"`
}

// Quadrant is one of four regions of a scatter plot relative to the median
// of the plotted X and Y values.
type Quadrant string

const (
	Q1 Quadrant = "Q1" // high X, high Y
	Q2 Quadrant = "Q2" // low X, high Y
	Q3 Quadrant = "Q3" // low X, low Y
	Q4 Quadrant = "Q4" // high X, low Y
)

// PlotPoint is a PairedPoint after scale transforms and classification.
type PlotPoint struct {
	PairedPoint
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	BubbleSize float64  `json:"bubble_size"`
	Quadrant   Quadrant `json:"quadrant"`
}

// RegressionLine is an ordinary-least-squares fit, clipped to the observed
// X range so the segment never extrapolates visually beyond the data.
type RegressionLine struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	XStart    float64 `json:"x_start"`
	XEnd      float64 `json:"x_end"`
	YStart    float64 `json:"y_start"`
	YEnd      float64 `json:"y_end"`
}

// ScatterResult is the render-ready output of BuildScatter.
// DroppedByScale counts points excluded by log-domain filtering — reported
// separately so they are never conflated with "no data".
type ScatterResult struct {
	Points         []PlotPoint     `json:"points"`
	DroppedByScale int             `json:"dropped_by_scale"`
	MedianX        *float64        `json:"median_x"`
	MedianY        *float64        `json:"median_y"`
	Correlation    *float64        `json:"correlation"`
	Regression     *RegressionLine `json:"regression"`
}

// ============================================================================
// RADAR — Normalized axis shapes
// ============================================================================

// RadarAxis is one metric compared across entities, pre-normalization.
// Values is aligned with the entity list passed to NormalizeRadar.
// LowerIsBetter marks metrics (error rate, cost) whose normalized value is
// inverted so that outward-further always means better.
type RadarAxis struct {
	Metric        string    `json:"metric"`
	LowerIsBetter bool      `json:"lower_is_better"`
	Values        []float64 `json:"values"`
}

// RadarChart is the normalized radar shape: one [0,100] score per
// entity per axis.
type RadarChart struct {
	Entities []string `json:"entities"`
	Axes     []string `json:"axes"`
	// Scores[i][j] is entity i's normalized score on axis j.
	Scores [][]float64 `json:"scores"`
}
