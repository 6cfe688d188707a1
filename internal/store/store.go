// Package store persists canonical pipeline output. All writes are upserts:
// games and roster entries key by external id, player game stats by
// (player, date), venues by name. Re-running a sync with unchanged upstream
// data therefore never duplicates entities.
package store

import (
	"context"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
)

// Store is the persisted destination for canonical entities. Implementations
// must serialize writes per entity key so concurrent syncs over different
// date ranges do not lose updates.
type Store interface {
	UpsertRosterEntry(ctx context.Context, e domain.RosterEntry) error
	UpsertVenue(ctx context.Context, v domain.Venue) error
	UpsertScheduleEntry(ctx context.Context, e domain.ScheduleEntry) error
	UpsertGameResult(ctx context.Context, g domain.GameResult) error
	UpsertPlayerGameStat(ctx context.Context, s domain.PlayerGameStat) error

	// GetGameResult reports the stored result for a game, ok=false when the
	// game has never been persisted. The orchestrator uses it to guard score
	// finality.
	GetGameResult(ctx context.Context, externalID string) (domain.GameResult, bool, error)

	// LatestPlayerGameStat returns the most recent accepted stat for a
	// player by date, ok=false for a player with no history.
	LatestPlayerGameStat(ctx context.Context, playerID string) (domain.PlayerGameStat, bool, error)

	// PlayerGameStats returns a player's accepted stats ordered by date
	// ascending.
	PlayerGameStats(ctx context.Context, playerID string) ([]domain.PlayerGameStat, error)

	// GetVenue reports a stored venue by name, ok=false when unknown.
	GetVenue(ctx context.Context, name string) (domain.Venue, bool, error)

	// RosterEntries returns all stored roster entries ordered by name. Game
	// log syncs fan out over this list.
	RosterEntries(ctx context.Context) ([]domain.RosterEntry, error)
}
