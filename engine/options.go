package engine

// ============================================================================
// SCATTER OPTIONS — Functional options for BuildScatter()
// ============================================================================

// Option configures BuildScatter via the functional options pattern.
type Option func(*config)

type config struct {
	TopN      int
	ScoreBy   string
	LogX      bool
	LogY      bool
	BubbleMin float64
	BubbleMax float64
}

// WithTopN bounds the plotted set to the top n points by the ranking score.
// Values outside [MinTopN, MaxTopN] are clamped.
func WithTopN(n int) Option {
	return func(c *config) { c.TopN = n }
}

// WithScoreBy selects the ranking criterion: ScoreRawX, ScoreRawY,
// ScoreBubble, or ScoreCombined.
func WithScoreBy(scoreBy string) Option {
	return func(c *config) { c.ScoreBy = scoreBy }
}

// WithLogX marks the X axis as log-scaled; points with RawX <= 0 are
// excluded and counted as dropped-by-scale.
func WithLogX() Option {
	return func(c *config) { c.LogX = true }
}

// WithLogY marks the Y axis as log-scaled; points with RawY <= 0 are
// excluded and counted as dropped-by-scale.
func WithLogY() Option {
	return func(c *config) { c.LogY = true }
}

// WithBubbleRange sets the visual size range bubbles are scaled into.
func WithBubbleRange(min, max float64) Option {
	return func(c *config) {
		c.BubbleMin = min
		c.BubbleMax = max
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		TopN:      30,
		ScoreBy:   ScoreCombined,
		BubbleMin: 8,
		BubbleMax: 48,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
