package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/usagelens/usagelens/engine"
	"github.com/usagelens/usagelens/helpers"
)

var (
	pivotFile    string
	pivotMetric  string
	pivotGroupBy string
	pivotSplitBy string
	pivotTopN    int
	pivotHTML    string
)

var pivotCmd = &cobra.Command{
	Use:   "pivot",
	Short: "Pivot a RowSet CSV into a chart-ready series or dense matrix",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(pivotFile)
		if err != nil {
			return fmt.Errorf("read rows: %w", err)
		}

		rs, err := helpers.ParseRowsCSV(data, pivotMetric, pivotGroupBy, pivotSplitBy)
		if err != nil {
			return err
		}

		ordered := cat.Ordered(pivotGroupBy)
		logger.Debug().
			Str("group_by", pivotGroupBy).
			Bool("ordered", ordered).
			Bool("split", rs.HasSplit()).
			Int("rows", len(rs.Rows)).
			Msg("pivoting")

		var out any
		switch {
		case !rs.HasSplit():
			out = engine.BuildSeries(rs, ordered)
		case ordered:
			out = engine.BuildPivot(rs, true)
		default:
			topN := pivotTopN
			if topN == 0 {
				topN = engine.TopNBar
			}
			out = engine.BuildCategorySummary(rs, topN)
		}

		if pivotHTML != "" {
			if p, ok := out.(*engine.Pivot); ok {
				if err := renderPivotHTML(p, pivotHTML); err != nil {
					return err
				}
				logger.Info().Str("path", pivotHTML).Msg("preview written")
			} else {
				logger.Warn().Msg("--html needs a split dimension, skipping preview")
			}
		}

		return printJSON(out)
	},
}

func init() {
	pivotCmd.Flags().StringVar(&pivotFile, "file", "", "RowSet CSV (group[,split],value)")
	pivotCmd.Flags().StringVar(&pivotMetric, "metric", "", "metric key")
	pivotCmd.Flags().StringVar(&pivotGroupBy, "group-by", "date", "grouping dimension")
	pivotCmd.Flags().StringVar(&pivotSplitBy, "split-by", "", "split dimension (optional)")
	pivotCmd.Flags().IntVar(&pivotTopN, "top", 0, "categorical top-N (default: bar-form policy)")
	pivotCmd.Flags().StringVar(&pivotHTML, "html", "", "write an HTML chart preview")
	_ = pivotCmd.MarkFlagRequired("file")
	_ = pivotCmd.MarkFlagRequired("metric")
	rootCmd.AddCommand(pivotCmd)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
