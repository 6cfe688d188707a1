// Package geocode resolves venue names to coordinates.
//
// Resolution is layered: a static table of known ballparks is consulted first
// (exact, then fuzzy name matching), and only unmatched venues go out to an
// external geocoding service. Results are cached for the life of the process
// with first-write-wins semantics, so a venue's coordinates never change
// between games within a run.
//
// A venue that cannot be resolved by any layer is reported with ErrUnresolved.
// Callers treat this as non-fatal: the game is stored without coordinates and
// weather enrichment is skipped for it.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
)

// ErrUnresolved indicates no resolution layer produced coordinates for a
// venue. Non-fatal: downstream enrichment is skipped, ingestion continues.
var ErrUnresolved = errors.New("venue unresolved")

// Source identifies which layer resolved a venue.
type Source string

const (
	SourceCache    Source = "cache"
	SourceStatic   Source = "static"
	SourceFuzzy    Source = "fuzzy"
	SourceExternal Source = "external"
)

// Lookup is an external geocoding service. Implementations return ok=false
// for a well-formed "no results" response and an error only for transport or
// service failures.
type Lookup interface {
	Search(ctx context.Context, query string) (domain.Coordinates, bool, error)
}

// minFuzzyRank bounds how loose a fuzzy match may be. Ranks above this are
// treated as no match rather than risking a wrong ballpark.
const minFuzzyRank = 10

// Resolver maps venue names to coordinates.
type Resolver struct {
	external Lookup
	logger   *slog.Logger

	mu    sync.Mutex
	cache map[string]domain.Coordinates
}

// NewResolver creates a resolver. external may be nil, in which case only the
// static table and cache are consulted.
func NewResolver(external Lookup, logger *slog.Logger) *Resolver {
	return &Resolver{
		external: external,
		logger:   logger,
		cache:    make(map[string]domain.Coordinates),
	}
}

// Resolve returns coordinates for a venue name. city and region refine the
// external query only; static matching is by name alone.
func (r *Resolver) Resolve(ctx context.Context, name, city, region string) (domain.Coordinates, Source, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Coordinates{}, "", fmt.Errorf("empty venue name: %w", ErrUnresolved)
	}
	key := cacheKey(name)

	r.mu.Lock()
	if c, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return c, SourceCache, nil
	}
	r.mu.Unlock()

	if v, src, ok := matchStatic(name); ok {
		return r.remember(key, *v.Coordinates), src, nil
	}

	if r.external == nil {
		return domain.Coordinates{}, "", fmt.Errorf("venue %q: %w", name, ErrUnresolved)
	}

	query := name
	if city != "" {
		query = fmt.Sprintf("%s, %s", name, city)
		if region != "" {
			query = fmt.Sprintf("%s, %s", query, region)
		}
	}
	coords, ok, err := r.external.Search(ctx, query)
	if err != nil {
		return domain.Coordinates{}, "", fmt.Errorf("venue %q: external lookup: %w", name, err)
	}
	if !ok {
		r.logger.Warn("venue not found by external geocoder", "venue", name, "query", query)
		return domain.Coordinates{}, "", fmt.Errorf("venue %q: %w", name, ErrUnresolved)
	}
	return r.remember(key, coords), SourceExternal, nil
}

// remember caches coordinates for a key, first write wins. Returns whichever
// value ends up cached so concurrent resolvers agree.
func (r *Resolver) remember(key string, c domain.Coordinates) domain.Coordinates {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.cache[key]; ok {
		return existing
	}
	r.cache[key] = c
	return c
}

func cacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// matchStatic finds a venue in the static table. Exact case-insensitive match
// first, then substring containment either way, then the best fuzzy rank
// under the threshold.
func matchStatic(name string) (domain.Venue, Source, bool) {
	needle := cacheKey(name)

	for _, v := range staticVenues {
		if cacheKey(v.Name) == needle {
			return v, SourceStatic, true
		}
	}

	for _, v := range staticVenues {
		have := cacheKey(v.Name)
		if strings.Contains(have, needle) || strings.Contains(needle, have) {
			return v, SourceFuzzy, true
		}
	}

	best := -1
	bestRank := minFuzzyRank + 1
	for i, v := range staticVenues {
		rank := fuzzy.RankMatchNormalizedFold(needle, v.Name)
		if rank >= 0 && rank < bestRank {
			best = i
			bestRank = rank
		}
	}
	if best >= 0 {
		return staticVenues[best], SourceFuzzy, true
	}
	return domain.Venue{}, "", false
}
