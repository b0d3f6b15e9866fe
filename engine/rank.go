package engine

import (
	"math"
	"sort"
)

// ============================================================================
// RANKING & TRUNCATION — Top-N by a selectable business metric
// ============================================================================
// Ranking runs BEFORE log-domain filtering and quadrant classification, so
// "top N" always means top N by the chosen metric — not top N of whatever
// survives scale filtering.
// ============================================================================

// Score selectors for Rank.
const (
	ScoreRawX     = "raw_x"
	ScoreRawY     = "raw_y"
	ScoreBubble   = "bubble"
	ScoreCombined = "combined" // |x| + |y|
)

// Top-N bounds. Requested values are clamped into this range.
const (
	MinTopN = 10
	MaxTopN = 1000
)

// Policy thresholds for categorical pivots. Wide visual forms (radar,
// small multiples) keep fewer groups than bar/treemap forms. Call sites
// may pass their own threshold instead.
const (
	TopNWide = 10
	TopNBar  = 20
)

// Rank sorts points descending by the selected score and keeps the first
// clamp(topN, MinTopN, MaxTopN). The sort is stable: ties preserve the
// original relative order. The input slice is not modified.
func Rank(points []PairedPoint, scoreBy string, topN int) []PairedPoint {
	if len(points) == 0 {
		return nil
	}

	ranked := make([]PairedPoint, len(points))
	copy(ranked, points)

	score := scoreFunc(scoreBy)
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) > score(ranked[j])
	})

	n := clampTopN(topN)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func scoreFunc(scoreBy string) func(PairedPoint) float64 {
	switch scoreBy {
	case ScoreRawY:
		return func(p PairedPoint) float64 { return p.RawY }
	case ScoreBubble:
		return func(p PairedPoint) float64 { return p.RawBubble }
	case ScoreCombined:
		return func(p PairedPoint) float64 { return math.Abs(p.RawX) + math.Abs(p.RawY) }
	default:
		return func(p PairedPoint) float64 { return p.RawX }
	}
}

func clampTopN(n int) int {
	if n < MinTopN {
		return MinTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}
