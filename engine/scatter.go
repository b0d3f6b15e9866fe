package engine

// ============================================================================
// SCATTER PIPELINE — The engine's front door for two-metric comparison
// ============================================================================
// Pipeline: merge → rank → log filter → quadrant classify → bubble size →
// statistics. Every stage is pure; the caller owns memoization.
//
// Ordering matters: rank runs on the full merged set (top N by business
// metric), log filtering runs after (dropped points are counted), and
// quadrant medians are computed over the set that actually gets plotted.
// ============================================================================

// BuildScatter merges two RowSets (plus optional bubble metric) into a
// render-ready scatter result.
//
// Options:
//   - WithTopN(n), WithScoreBy(s) — ranking policy
//   - WithLogX(), WithLogY()      — log-domain filtering
//   - WithBubbleRange(min, max)  — visual bubble sizes
func BuildScatter(x, y *RowSet, bubble *RowSet, opts ...Option) *ScatterResult {
	cfg := applyOptions(opts)

	merged := MergePaired(x, y, bubble)
	ranked := Rank(merged, cfg.ScoreBy, cfg.TopN)
	plotted, dropped := FilterLog(ranked, cfg.LogX, cfg.LogY)

	result := &ScatterResult{
		Points:         make([]PlotPoint, 0, len(plotted)),
		DroppedByScale: dropped,
	}
	if len(plotted) == 0 {
		return result
	}

	xs := make([]float64, 0, len(plotted))
	ys := make([]float64, 0, len(plotted))
	for _, p := range plotted {
		result.Points = append(result.Points, PlotPoint{
			PairedPoint: p,
			X:           p.RawX,
			Y:           p.RawY,
		})
		xs = append(xs, p.RawX)
		ys = append(ys, p.RawY)
	}

	result.MedianX = Median(xs)
	result.MedianY = Median(ys)
	classifyQuadrants(result.Points, *result.MedianX, *result.MedianY)

	SizeBubbles(result.Points, cfg.BubbleMin, cfg.BubbleMax)

	result.Correlation = Pearson(xs, ys)
	result.Regression = Regression(xs, ys)

	return result
}

// classifyQuadrants assigns each point a quadrant relative to the medians
// of the plotted set. Points on a median line count as the high side.
func classifyQuadrants(points []PlotPoint, medX, medY float64) {
	for i := range points {
		highX := points[i].X >= medX
		highY := points[i].Y >= medY
		switch {
		case highX && highY:
			points[i].Quadrant = Q1
		case !highX && highY:
			points[i].Quadrant = Q2
		case !highX && !highY:
			points[i].Quadrant = Q3
		default:
			points[i].Quadrant = Q4
		}
	}
}
