package engine

// ============================================================================
// PAIRED-METRIC MERGE — Inner join of independently fetched RowSets
// ============================================================================
// Two metrics fetched for the same group dimension become scatter points;
// an optional third supplies bubble sizes. A point is emitted only when the
// group exists in BOTH the X and Y sets — groups present in only one are
// dropped, not zero-filled. A missing bubble value defaults to 0 rather
// than excluding the point.
//
// Callers must never pass RowSets from different parameter generations;
// the apiclient package guards that boundary.
// ============================================================================

// MergePaired inner-joins x and y on the group key. bubble may be nil.
// Output order follows the X RowSet's original row order (first appearance
// per group), which keeps the merge deterministic.
func MergePaired(x, y *RowSet, bubble *RowSet) []PairedPoint {
	if x == nil || y == nil {
		return nil
	}

	yVals := valueByGroup(y)
	var bubbleVals map[string]float64
	if bubble != nil {
		bubbleVals = valueByGroup(bubble)
	}

	seen := make(map[string]bool, len(x.Rows))
	points := make([]PairedPoint, 0, len(x.Rows))
	for _, r := range x.Rows {
		if seen[r.Group] {
			continue
		}
		seen[r.Group] = true

		yv, ok := yVals[r.Group]
		if !ok {
			continue
		}

		p := PairedPoint{
			Group:     r.Group,
			RawX:      r.Value,
			RawY:      yv,
			RawBubble: bubbleVals[r.Group],
		}
		if p.RawX != 0 {
			ratio := p.RawY / p.RawX
			p.Ratio = &ratio
		}
		points = append(points, p)
	}
	return points
}

func valueByGroup(rs *RowSet) map[string]float64 {
	vals := make(map[string]float64, len(rs.Rows))
	for _, r := range rs.Rows {
		if _, ok := vals[r.Group]; !ok {
			vals[r.Group] = r.Value
		}
	}
	return vals
}
