package engine

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// ============================================================================
// SCALAR STATISTICS — Median, Pearson, OLS Regression
// ============================================================================
// Degenerate input (too few points, zero variance) returns nil — never a
// panic, never NaN/Inf. The UI renders nil distinctly from a real zero.
// ============================================================================

// Median returns the middle value of values, averaging the two middle
// elements for even-length input. Returns nil for empty input.
func Median(values []float64) *float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var m float64
	if n%2 == 1 {
		m = sorted[n/2]
	} else {
		m = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return &m
}

// Pearson computes the correlation coefficient of paired samples.
// Returns nil when fewer than 2 points or either variance is exactly zero.
// The result is clamped to [-1, 1] against floating-point drift.
func Pearson(xs, ys []float64) *float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return nil
	}

	mx := stats.Mean(xs)
	my := stats.Mean(ys)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - mx
		dy := ys[i] - my
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return nil
	}

	r := cov / math.Sqrt(varX*varY)
	r = math.Max(-1, math.Min(1, r))
	return &r
}

// Regression fits y = slope*x + intercept by ordinary least squares.
// Returns nil under the same degeneracy conditions as Pearson (fewer than
// 2 points, zero X variance). The line segment spans the observed X range
// only — it never extrapolates beyond the data.
func Regression(xs, ys []float64) *RegressionLine {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return nil
	}

	mx := stats.Mean(xs)
	my := stats.Mean(ys)

	var cov, varX float64
	minX, maxX := xs[0], xs[0]
	for i := 0; i < n; i++ {
		dx := xs[i] - mx
		cov += dx * (ys[i] - my)
		varX += dx * dx
		if xs[i] < minX {
			minX = xs[i]
		}
		if xs[i] > maxX {
			maxX = xs[i]
		}
	}

	if varX == 0 {
		return nil
	}

	slope := cov / varX
	intercept := my - slope*mx

	return &RegressionLine{
		Slope:     slope,
		Intercept: intercept,
		XStart:    minX,
		XEnd:      maxX,
		YStart:    slope*minX + intercept,
		YEnd:      slope*maxX + intercept,
	}
}
