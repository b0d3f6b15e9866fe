// Package usagelens provides the analytic result-transformation engine
// behind the usagelens dashboard.
//
// Usage:
//
//	import "github.com/usagelens/usagelens/engine"
//
//	pivot := engine.BuildPivot(rowSet, true)
//	result := engine.BuildScatter(costs, tokens, requests,
//	    engine.WithTopN(20),
//	    engine.WithLogX(),
//	)
//
// The engine takes flat, server-aggregated RowSets (fetched by the
// apiclient package) and reshapes them into the exact structures a chart
// or table needs: dense pivot matrices, ranked top-N subsets, paired
// scatter sets with quadrant classification, normalized radar axes, and
// regression/correlation statistics. The export package serializes any
// flat record list into byte-exact CSV/JSON download artifacts.
//
// All transformations are pure, synchronous functions — no I/O, no caching,
// no rendering. The caller owns memoization and staleness guarding (see
// apiclient.Guard).
package usagelens
