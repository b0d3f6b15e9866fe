package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/usagelens/usagelens/catalog"
)

// ============================================================================
// USAGELENS CLI — Offline harness for the transform engine
// ============================================================================
// Feeds RowSet CSV files through the same transforms the dashboard uses:
// pivot, scatter, radar, export. The engine stays pure; all I/O lives here.
// ============================================================================

const version = "0.3.0"

var (
	cfgFile     string
	catalogFile string
	verbose     bool

	settings Settings
	cat      catalog.Config
	logger   zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "usagelens",
	Short:   "usagelens: reshape aggregation results into chart-ready data",
	Version: version,
	Long: `usagelens reworks flat, server-aggregated rows into the structures
dashboards render: dense pivot matrices, ranked scatter sets, normalized
radar axes, and byte-exact CSV/JSON export artifacts.`,
}

func main() {
	cobra.OnInitialize(setup)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default usagelens.yaml in cwd)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "metric catalog YAML (default: built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func setup() {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	var err error
	settings, err = LoadSettings(cfgFile)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load settings, using defaults")
		settings = DefaultSettings()
	}

	if catalogFile != "" {
		cat, err = catalog.Load(catalogFile)
		if err != nil {
			logger.Fatal().Err(err).Str("path", catalogFile).Msg("invalid catalog")
		}
	} else {
		cat = catalog.Default()
	}
	logger.Debug().Str("product", cat.Product).Int("metrics", len(cat.Metrics)).Msg("catalog loaded")
}
