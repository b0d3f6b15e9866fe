package apiclient

import (
	"sync"

	"github.com/google/uuid"
)

// ============================================================================
// GENERATION GUARD — Staleness protection for paired fetches
// ============================================================================
// Each change of view parameters (metric, dimension, filters) starts a new
// generation. Responses tagged with an older generation are discarded so a
// merge never combines RowSets computed for different parameters.
// ============================================================================

// Generation identifies one batch of in-flight aggregation requests.
type Generation struct {
	id uuid.UUID
}

// String returns the generation's identifier for logging.
func (g Generation) String() string { return g.id.String() }

// Guard tracks the current parameter generation.
// The zero value is ready to use.
type Guard struct {
	mu      sync.Mutex
	current uuid.UUID
}

// Next starts a new generation, invalidating all previous ones.
// Call it whenever the view parameters change, before fetching.
func (g *Guard) Next() Generation {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = uuid.New()
	return Generation{id: g.current}
}

// Current reports whether gen is still the live generation.
func (g *Guard) Current(gen Generation) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current == gen.id
}
