package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// SCATTER PIPELINE TESTS
// ============================================================================

func TestBuildScatterQuadrants(t *testing.T) {
	x := metricSet("cost", map[string]float64{"a": 1, "b": 1, "c": 5, "d": 5}, "a", "b", "c", "d")
	y := metricSet("tokens", map[string]float64{"a": 1, "b": 5, "c": 1, "d": 5}, "a", "b", "c", "d")

	result := BuildScatter(x, y, nil)
	require.Len(t, result.Points, 4)
	require.NotNil(t, result.MedianX)
	require.NotNil(t, result.MedianY)
	assert.Equal(t, 3.0, *result.MedianX)
	assert.Equal(t, 3.0, *result.MedianY)

	byGroup := make(map[string]Quadrant)
	for _, p := range result.Points {
		byGroup[p.Group] = p.Quadrant
	}
	assert.Equal(t, Q3, byGroup["a"], "(1,1) is low/low")
	assert.Equal(t, Q2, byGroup["b"], "(1,5) is low/high")
	assert.Equal(t, Q4, byGroup["c"], "(5,1) is high/low")
	assert.Equal(t, Q1, byGroup["d"], "(5,5) is high/high")
}

func TestBuildScatterLogDropCount(t *testing.T) {
	x := metricSet("cost", map[string]float64{"a": 1, "b": 0, "c": 3, "d": -5, "e": 2}, "a", "b", "c", "d", "e")
	y := metricSet("tokens", map[string]float64{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5}, "a", "b", "c", "d", "e")

	result := BuildScatter(x, y, nil, WithLogX())
	assert.Len(t, result.Points, 3)
	assert.Equal(t, 2, result.DroppedByScale)
}

func TestBuildScatterRanksBeforeLogFilter(t *testing.T) {
	// Top-by-score selection must see every point, including the ones the
	// log filter drops afterwards: "top N" means top N by business metric.
	xVals := map[string]float64{}
	yVals := map[string]float64{}
	order := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		g := fmt.Sprintf("g%02d", i)
		order = append(order, g)
		xVals[g] = float64(i - 2) // g00, g01, g02 are non-positive
		yVals[g] = 1
	}
	x := metricSet("cost", xVals, order...)
	y := metricSet("tokens", yVals, order...)

	result := BuildScatter(x, y, nil, WithTopN(10), WithScoreBy(ScoreCombined), WithLogX())

	// Combined score ranks g00 (|−2|+1) above g01 and g02, so the top 10
	// includes two non-positive X values that the log filter then drops.
	assert.Equal(t, 2, result.DroppedByScale)
	assert.Len(t, result.Points, 8)
}

func TestBuildScatterEmptyInputs(t *testing.T) {
	result := BuildScatter(&RowSet{}, &RowSet{}, nil)
	require.NotNil(t, result)
	assert.Empty(t, result.Points, "empty input surfaces as an empty result, not an error")
	assert.Nil(t, result.MedianX)
	assert.Nil(t, result.Correlation)
	assert.Nil(t, result.Regression)
}

func TestBuildScatterStatistics(t *testing.T) {
	// y = 2x + 1 across the merged set.
	xVals := map[string]float64{}
	yVals := map[string]float64{}
	order := []string{"a", "b", "c", "d"}
	for i, g := range order {
		xVals[g] = float64(i + 1)
		yVals[g] = 2*float64(i+1) + 1
	}
	x := metricSet("cost", xVals, order...)
	y := metricSet("tokens", yVals, order...)

	result := BuildScatter(x, y, nil)
	require.NotNil(t, result.Correlation)
	assert.InDelta(t, 1.0, *result.Correlation, 1e-12)

	require.NotNil(t, result.Regression)
	assert.InDelta(t, 2.0, result.Regression.Slope, 1e-9)
	assert.InDelta(t, 1.0, result.Regression.Intercept, 1e-9)
	assert.Equal(t, 1.0, result.Regression.XStart)
	assert.Equal(t, 4.0, result.Regression.XEnd)
}

func TestBuildScatterBubbleSizing(t *testing.T) {
	x := metricSet("cost", map[string]float64{"a": 1, "b": 2}, "a", "b")
	y := metricSet("tokens", map[string]float64{"a": 1, "b": 2}, "a", "b")
	bubble := metricSet("requests", map[string]float64{"a": 0, "b": 10}, "a", "b")

	result := BuildScatter(x, y, bubble, WithBubbleRange(4, 20))
	require.Len(t, result.Points, 2)

	byGroup := make(map[string]float64)
	for _, p := range result.Points {
		byGroup[p.Group] = p.BubbleSize
	}
	assert.Equal(t, 4.0, byGroup["a"])
	assert.Equal(t, 20.0, byGroup["b"])
}
