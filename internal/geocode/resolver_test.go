package geocode

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
)

type fakeLookup struct {
	coords  domain.Coordinates
	found   bool
	err     error
	queries []string
}

func (f *fakeLookup) Search(_ context.Context, query string) (domain.Coordinates, bool, error) {
	f.queries = append(f.queries, query)
	return f.coords, f.found, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveStaticWithoutNetwork(t *testing.T) {
	r := NewResolver(nil, testLogger())

	coords, src, err := r.Resolve(context.Background(), "Dodger Stadium", "Los Angeles", "CA")
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, src)
	assert.Equal(t, domain.Coordinates{Lat: 34.0742, Lon: -118.2400}, coords)
}

func TestResolveFuzzyMatch(t *testing.T) {
	r := NewResolver(nil, testLogger())

	tests := []struct {
		name    string
		wantLat float64
	}{
		{"Wrigley", 41.9484},                // substring of canonical name
		{"Oriole Park", 39.2839},            // prefix of a long name
		{"The Great American Ball Park", 39.0979}, // canonical name is a substring
	}
	for _, tt := range tests {
		coords, src, err := r.Resolve(context.Background(), tt.name, "", "")
		require.NoError(t, err, tt.name)
		assert.Equal(t, SourceFuzzy, src, tt.name)
		assert.Equal(t, tt.wantLat, coords.Lat, tt.name)
	}
}

func TestResolveCacheFirstWriteWins(t *testing.T) {
	ext := &fakeLookup{coords: domain.Coordinates{Lat: 10, Lon: 20}, found: true}
	r := NewResolver(ext, testLogger())

	first, src, err := r.Resolve(context.Background(), "Estadio Alfredo Harp Helu", "Mexico City", "")
	require.NoError(t, err)
	assert.Equal(t, SourceExternal, src)
	assert.Equal(t, domain.Coordinates{Lat: 10, Lon: 20}, first)

	// Change what the external service would return; the cached value holds.
	ext.coords = domain.Coordinates{Lat: 99, Lon: 99}
	second, src, err := r.Resolve(context.Background(), "estadio alfredo harp helu", "", "")
	require.NoError(t, err)
	assert.Equal(t, SourceCache, src)
	assert.Equal(t, first, second)
	assert.Len(t, ext.queries, 1, "second resolve must not hit the network")
}

func TestResolveExternalQueryIncludesCityAndRegion(t *testing.T) {
	ext := &fakeLookup{coords: domain.Coordinates{Lat: 1, Lon: 2}, found: true}
	r := NewResolver(ext, testLogger())

	_, _, err := r.Resolve(context.Background(), "Sutter Health Park", "Sacramento", "CA")
	require.NoError(t, err)
	require.Len(t, ext.queries, 1)
	assert.Equal(t, "Sutter Health Park, Sacramento, CA", ext.queries[0])
}

func TestResolveUnresolved(t *testing.T) {
	t.Run("no external configured", func(t *testing.T) {
		r := NewResolver(nil, testLogger())
		_, _, err := r.Resolve(context.Background(), "Historic Bowman Field", "", "")
		assert.ErrorIs(t, err, ErrUnresolved)
	})

	t.Run("external has no results", func(t *testing.T) {
		r := NewResolver(&fakeLookup{found: false}, testLogger())
		_, _, err := r.Resolve(context.Background(), "Historic Bowman Field", "", "")
		assert.ErrorIs(t, err, ErrUnresolved)
	})

	t.Run("empty name", func(t *testing.T) {
		r := NewResolver(&fakeLookup{found: true}, testLogger())
		_, _, err := r.Resolve(context.Background(), "  ", "", "")
		assert.ErrorIs(t, err, ErrUnresolved)
	})
}

func TestResolveExternalFailureIsNotUnresolved(t *testing.T) {
	ext := &fakeLookup{err: errors.New("connection refused")}
	r := NewResolver(ext, testLogger())

	_, _, err := r.Resolve(context.Background(), "Historic Bowman Field", "", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnresolved)
}

func TestMatchStaticNoFalsePositive(t *testing.T) {
	_, _, ok := matchStatic("Tokyo Dome")
	assert.False(t, ok)
}
