package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usagelens/usagelens/engine"
)

var (
	radarFiles   []string
	radarMetrics []string
	radarGroupBy string
	radarTop     int
	radarHTML    string
)

var radarCmd = &cobra.Command{
	Use:   "radar",
	Short: "Normalize metric RowSets into [0,100] radar axes across entities",
	Long: `Each --file is a single-metric RowSet CSV (group,value) whose groups are
the compared entities (models, tags). Axes for lower-is-better metrics
(per the catalog) are inverted so outward-further always means better.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(radarFiles) == 0 || len(radarFiles) != len(radarMetrics) {
			return fmt.Errorf("need matching --file and --metric flags, got %d files and %d metrics",
				len(radarFiles), len(radarMetrics))
		}

		sets := make([]*engine.RowSet, len(radarFiles))
		for i, path := range radarFiles {
			rs, err := loadRowSet(path, radarMetrics[i], radarGroupBy)
			if err != nil {
				return err
			}
			sets[i] = rs
		}

		// Entities: top N groups of the first axis by value, the way the
		// dashboard compares its top models.
		primary := engine.BuildSeries(sets[0], false)
		top := radarTop
		if top <= 0 {
			top = engine.TopNWide
		}
		if len(primary) > top {
			primary = primary[:top]
		}
		entities := make([]string, len(primary))
		for i, p := range primary {
			entities[i] = p.Key
		}

		axes := make([]engine.RadarAxis, 0, len(sets))
		for i, rs := range sets {
			byGroup := make(map[string]float64, len(rs.Rows))
			for _, r := range rs.Rows {
				byGroup[r.Group] = r.Value
			}
			values := make([]float64, len(entities))
			for j, e := range entities {
				values[j] = byGroup[e]
			}

			lowerIsBetter := false
			if m, ok := cat.Metric(radarMetrics[i]); ok {
				lowerIsBetter = m.LowerIsBetter
			}
			axes = append(axes, engine.RadarAxis{
				Metric:        radarMetrics[i],
				LowerIsBetter: lowerIsBetter,
				Values:        values,
			})
		}

		chart := engine.NormalizeRadar(entities, axes)

		logger.Info().
			Int("entities", len(chart.Entities)).
			Int("axes", len(chart.Axes)).
			Msg("radar built")

		if radarHTML != "" {
			if err := renderRadarHTML(chart, radarHTML); err != nil {
				return err
			}
			logger.Info().Str("path", radarHTML).Msg("preview written")
		}

		return printJSON(chart)
	},
}

func init() {
	radarCmd.Flags().StringArrayVar(&radarFiles, "file", nil, "axis RowSet CSV (repeatable)")
	radarCmd.Flags().StringArrayVar(&radarMetrics, "metric", nil, "axis metric key (repeatable, pairs with --file)")
	radarCmd.Flags().StringVar(&radarGroupBy, "group-by", "model", "entity dimension")
	radarCmd.Flags().IntVar(&radarTop, "top", 0, "entities to compare (default: wide-form policy)")
	radarCmd.Flags().StringVar(&radarHTML, "html", "", "write an HTML chart preview")
	rootCmd.AddCommand(radarCmd)
}
