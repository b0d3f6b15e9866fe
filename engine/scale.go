package engine

// ============================================================================
// NORMALIZATION — Log-domain filtering, bubble sizing, radar axes
// ============================================================================
// DomainViolation recovery: a non-positive value under a log transform is
// excluded and counted, never converted to NaN/Inf that could reach a chart.
// ============================================================================

// FilterLog excludes points whose raw value is non-positive on any
// log-scaled axis. The dropped count is reported separately so callers can
// surface "dropped by scale" distinctly from "no data".
func FilterLog(points []PairedPoint, logX, logY bool) (kept []PairedPoint, dropped int) {
	if !logX && !logY {
		return points, 0
	}

	kept = make([]PairedPoint, 0, len(points))
	for _, p := range points {
		if (logX && p.RawX <= 0) || (logY && p.RawY <= 0) {
			dropped++
			continue
		}
		kept = append(kept, p)
	}
	return kept, dropped
}

// SizeBubbles scales each point's bubble metric linearly into
// [minSize, maxSize] across the currently plotted set. When the metric has
// no variance every bubble gets the fixed mid-range size — bubbles never
// collapse to zero and the scale never divides by zero.
func SizeBubbles(points []PlotPoint, minSize, maxSize float64) {
	if len(points) == 0 {
		return
	}

	lo, hi := points[0].RawBubble, points[0].RawBubble
	for _, p := range points[1:] {
		if p.RawBubble < lo {
			lo = p.RawBubble
		}
		if p.RawBubble > hi {
			hi = p.RawBubble
		}
	}

	if lo == hi {
		mid := (minSize + maxSize) / 2
		for i := range points {
			points[i].BubbleSize = mid
		}
		return
	}

	span := hi - lo
	for i := range points {
		points[i].BubbleSize = minSize + (points[i].RawBubble-lo)/span*(maxSize-minSize)
	}
}

// NormalizeRadar normalizes each axis across the compared entities into
// [0,100] using that axis's own min/max. Lower-is-better axes are inverted
// (100 - normalized) so outward-further always means better on every axis.
// An axis with no variance scores every entity at the midpoint.
// Axes whose value count does not match the entity list are skipped.
func NormalizeRadar(entities []string, axes []RadarAxis) *RadarChart {
	chart := &RadarChart{
		Entities: entities,
		Scores:   make([][]float64, len(entities)),
	}
	for i := range chart.Scores {
		chart.Scores[i] = make([]float64, 0, len(axes))
	}

	// No entities to compare: an empty chart, never a crash.
	if len(entities) == 0 {
		return chart
	}

	for _, axis := range axes {
		if len(axis.Values) != len(entities) {
			continue
		}
		chart.Axes = append(chart.Axes, axis.Metric)

		lo, hi := axis.Values[0], axis.Values[0]
		for _, v := range axis.Values[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}

		for i, v := range axis.Values {
			var score float64
			if lo == hi {
				score = 50
			} else {
				score = (v - lo) / (hi - lo) * 100
			}
			if axis.LowerIsBetter {
				score = 100 - score
			}
			chart.Scores[i] = append(chart.Scores[i], score)
		}
	}
	return chart
}
