package engine

import (
	"sort"
)

// ============================================================================
// ROWSET PIVOTING — Flat rows → chart-ready shapes
// ============================================================================
// Three shapes depending on the grouping dimension and the split dimension:
//
//   BuildSeries          — plain series, no split
//   BuildPivot           — dense group×split matrix, zero-filled
//   BuildCategorySummary — categorical pivot ranked by group total
//
// All three are pure functions of (rows, metadata, flags): identical input
// yields identical output, including tie-break order. Ties break by the
// original row order (first appearance), stable.
//
// Zero-fill universes come from metadata.Groups/Splits, but keys that appear
// only in the rows are authoritative too — they join the universe rather
// than being dropped.
// ============================================================================

// BuildSeries maps an unsplit RowSet to a plain series.
// Sorted ascending by group when the grouping dimension is ordered
// (time-like), else descending by value.
func BuildSeries(rs *RowSet, ordered bool) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(rs.Rows))
	for _, r := range rs.Rows {
		points = append(points, SeriesPoint{Key: r.Group, Value: r.Value})
	}

	if ordered {
		sort.SliceStable(points, func(i, j int) bool { return points[i].Key < points[j].Key })
	} else {
		sort.SliceStable(points, func(i, j int) bool { return points[i].Value > points[j].Value })
	}
	return points
}

// BuildPivot builds a dense group×split matrix from a split RowSet.
// Every group in the universe gets a row; every row gets a value for every
// split in the universe, defaulting to 0. Rows sort ascending by group when
// ordered, else descending by the sum of their split values.
func BuildPivot(rs *RowSet, ordered bool) *Pivot {
	groups, splits := keyUniverses(rs)

	byGroup := make(map[string]*PivotRow, len(groups))
	rows := make([]PivotRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, PivotRow{Group: g, Values: make(map[string]float64, len(splits))})
	}
	for i := range rows {
		byGroup[rows[i].Group] = &rows[i]
	}

	for _, r := range rs.Rows {
		entry := byGroup[r.Group]
		entry.Values[r.Split] = r.Value
	}

	// Dense fill: every split key present, every row total computed.
	for i := range rows {
		var total float64
		for _, s := range splits {
			if _, ok := rows[i].Values[s]; !ok {
				rows[i].Values[s] = 0
			}
			total += rows[i].Values[s]
		}
		rows[i].Total = total
	}

	if ordered {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Group < rows[j].Group })
	} else {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })
	}

	return &Pivot{
		GroupBy: rs.Metadata.GroupBy,
		Splits:  splits,
		Rows:    rows,
	}
}

// BuildCategorySummary pivots a categorical (unordered) split RowSet and
// keeps the top N groups by total. The threshold is policy, not derived:
// wide visual forms (radar, small multiples) pass TopNWide, bar/treemap
// forms pass TopNBar.
func BuildCategorySummary(rs *RowSet, topN int) *Pivot {
	p := BuildPivot(rs, false)
	if topN > 0 && len(p.Rows) > topN {
		p.Rows = p.Rows[:topN]
	}
	return p
}

// keyUniverses merges the metadata universes with keys observed in the rows,
// preserving metadata order first, then first-appearance row order.
func keyUniverses(rs *RowSet) (groups, splits []string) {
	groupSeen := make(map[string]bool, len(rs.Metadata.Groups))
	for _, g := range rs.Metadata.Groups {
		if !groupSeen[g] {
			groupSeen[g] = true
			groups = append(groups, g)
		}
	}
	splitSeen := make(map[string]bool, len(rs.Metadata.Splits))
	for _, s := range rs.Metadata.Splits {
		if !splitSeen[s] {
			splitSeen[s] = true
			splits = append(splits, s)
		}
	}

	for _, r := range rs.Rows {
		if !groupSeen[r.Group] {
			groupSeen[r.Group] = true
			groups = append(groups, r.Group)
		}
		if !splitSeen[r.Split] {
			splitSeen[r.Split] = true
			splits = append(splits, r.Split)
		}
	}
	return groups, splits
}
