package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/usagelens/usagelens/engine"
	"github.com/usagelens/usagelens/helpers"
)

var (
	scatterXFile      string
	scatterYFile      string
	scatterBubbleFile string
	scatterXMetric    string
	scatterYMetric    string
	scatterGroupBy    string
	scatterTop        int
	scatterScoreBy    string
	scatterLogX       bool
	scatterLogY       bool
	scatterHTML       string
)

var scatterCmd = &cobra.Command{
	Use:   "scatter",
	Short: "Merge two metric RowSets into a ranked, classified scatter set",
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := loadRowSet(scatterXFile, scatterXMetric, scatterGroupBy)
		if err != nil {
			return err
		}
		y, err := loadRowSet(scatterYFile, scatterYMetric, scatterGroupBy)
		if err != nil {
			return err
		}

		var bubble *engine.RowSet
		if scatterBubbleFile != "" {
			bubble, err = loadRowSet(scatterBubbleFile, "bubble", scatterGroupBy)
			if err != nil {
				return err
			}
		}

		top := scatterTop
		if top == 0 {
			top = settings.TopN
		}

		opts := []engine.Option{
			engine.WithTopN(top),
			engine.WithScoreBy(scatterScoreBy),
			engine.WithBubbleRange(settings.BubbleMin, settings.BubbleMax),
		}
		if scatterLogX {
			opts = append(opts, engine.WithLogX())
		}
		if scatterLogY {
			opts = append(opts, engine.WithLogY())
		}

		result := engine.BuildScatter(x, y, bubble, opts...)

		logger.Info().
			Int("points", len(result.Points)).
			Int("dropped_by_scale", result.DroppedByScale).
			Msg("scatter built")

		if scatterHTML != "" {
			if err := renderScatterHTML(result, scatterXMetric, scatterYMetric, scatterHTML); err != nil {
				return err
			}
			logger.Info().Str("path", scatterHTML).Msg("preview written")
		}

		return printJSON(result)
	},
}

func init() {
	scatterCmd.Flags().StringVar(&scatterXFile, "x-file", "", "X metric RowSet CSV (group,value)")
	scatterCmd.Flags().StringVar(&scatterYFile, "y-file", "", "Y metric RowSet CSV (group,value)")
	scatterCmd.Flags().StringVar(&scatterBubbleFile, "bubble-file", "", "bubble metric RowSet CSV (optional)")
	scatterCmd.Flags().StringVar(&scatterXMetric, "x-metric", "cost", "X metric key")
	scatterCmd.Flags().StringVar(&scatterYMetric, "y-metric", "tokens", "Y metric key")
	scatterCmd.Flags().StringVar(&scatterGroupBy, "group-by", "model", "shared group dimension")
	scatterCmd.Flags().IntVar(&scatterTop, "top", 0, "keep top N points (0: configured default)")
	scatterCmd.Flags().StringVar(&scatterScoreBy, "score-by", engine.ScoreCombined, "ranking score: raw_x, raw_y, bubble, combined")
	scatterCmd.Flags().BoolVar(&scatterLogX, "log-x", false, "log-scale X (drops non-positive values)")
	scatterCmd.Flags().BoolVar(&scatterLogY, "log-y", false, "log-scale Y (drops non-positive values)")
	scatterCmd.Flags().StringVar(&scatterHTML, "html", "", "write an HTML chart preview")
	_ = scatterCmd.MarkFlagRequired("x-file")
	_ = scatterCmd.MarkFlagRequired("y-file")
	rootCmd.AddCommand(scatterCmd)
}

func loadRowSet(path, metric, groupBy string) (*engine.RowSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return helpers.ParseRowsCSV(data, metric, groupBy, "")
}
