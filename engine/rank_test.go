package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// RANKING TESTS
// ============================================================================

func TestRankBound(t *testing.T) {
	points := make([]PairedPoint, 40)
	for i := range points {
		points[i] = PairedPoint{Group: fmt.Sprintf("g%02d", i), RawX: float64(i)}
	}

	ranked := Rank(points, ScoreRawX, 15)
	assert.Len(t, ranked, 15)
	assert.Equal(t, "g39", ranked[0].Group, "sorted descending by score")

	// Fewer points than N: everything survives.
	assert.Len(t, Rank(points[:5], ScoreRawX, 15), 5)
}

func TestRankNonIncreasing(t *testing.T) {
	points := []PairedPoint{
		{Group: "a", RawX: 3}, {Group: "b", RawX: 9},
		{Group: "c", RawX: 1}, {Group: "d", RawX: 9},
	}

	ranked := Rank(points, ScoreRawX, 10)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].RawX, ranked[i].RawX)
	}
}

func TestRankStableTies(t *testing.T) {
	points := []PairedPoint{
		{Group: "first", RawX: 5},
		{Group: "second", RawX: 5},
		{Group: "third", RawX: 5},
	}

	ranked := Rank(points, ScoreRawX, 10)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Group, "ties preserve original relative order")
	assert.Equal(t, "second", ranked[1].Group)
	assert.Equal(t, "third", ranked[2].Group)
}

func TestRankClampsTopN(t *testing.T) {
	points := make([]PairedPoint, 30)
	for i := range points {
		points[i] = PairedPoint{RawX: float64(i)}
	}

	assert.Len(t, Rank(points, ScoreRawX, 3), MinTopN, "topN below the floor clamps up")
	assert.Len(t, Rank(points, ScoreRawX, 5000), 30, "ceiling clamp never grows the set")
}

func TestRankCombinedScore(t *testing.T) {
	points := []PairedPoint{
		{Group: "small", RawX: 1, RawY: 1},
		{Group: "negative", RawX: -10, RawY: -10}, // |x|+|y| = 20
		{Group: "mixed", RawX: 5, RawY: -2},       // 7
	}

	ranked := Rank(points, ScoreCombined, 10)
	assert.Equal(t, "negative", ranked[0].Group, "combined score uses absolute values")
	assert.Equal(t, "mixed", ranked[1].Group)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	points := []PairedPoint{{Group: "a", RawX: 1}, {Group: "b", RawX: 2}}
	Rank(points, ScoreRawX, 10)
	assert.Equal(t, "a", points[0].Group)
}
