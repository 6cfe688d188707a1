package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
)

// Memory is an in-process Store. Suitable for tests and single-run syncs
// where persistence across invocations is not needed.
type Memory struct {
	mu       sync.RWMutex
	roster   map[string]domain.RosterEntry
	venues   map[string]domain.Venue
	schedule map[string]domain.ScheduleEntry
	games    map[string]domain.GameResult
	stats    map[string]map[string]domain.PlayerGameStat // player id -> date -> stat
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		roster:   make(map[string]domain.RosterEntry),
		venues:   make(map[string]domain.Venue),
		schedule: make(map[string]domain.ScheduleEntry),
		games:    make(map[string]domain.GameResult),
		stats:    make(map[string]map[string]domain.PlayerGameStat),
	}
}

func (m *Memory) UpsertRosterEntry(_ context.Context, e domain.RosterEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roster[e.ExternalID] = e
	return nil
}

func (m *Memory) UpsertVenue(_ context.Context, v domain.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := venueKey(v.Name)
	if existing, ok := m.venues[key]; ok && existing.Coordinates != nil {
		// Coordinates are immutable once set.
		v.Coordinates = existing.Coordinates
	}
	m.venues[key] = v
	return nil
}

func (m *Memory) UpsertScheduleEntry(_ context.Context, e domain.ScheduleEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedule[e.ExternalID] = e
	return nil
}

func (m *Memory) UpsertGameResult(_ context.Context, g domain.GameResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ExternalID] = g
	return nil
}

func (m *Memory) UpsertPlayerGameStat(_ context.Context, s domain.PlayerGameStat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byDate, ok := m.stats[s.PlayerID]
	if !ok {
		byDate = make(map[string]domain.PlayerGameStat)
		m.stats[s.PlayerID] = byDate
	}
	byDate[s.Date.UTC().Format("2006-01-02")] = s
	return nil
}

func (m *Memory) GetGameResult(_ context.Context, externalID string) (domain.GameResult, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[externalID]
	return g, ok, nil
}

func (m *Memory) GetVenue(_ context.Context, name string) (domain.Venue, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.venues[venueKey(name)]
	return v, ok, nil
}

func (m *Memory) LatestPlayerGameStat(_ context.Context, playerID string) (domain.PlayerGameStat, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest domain.PlayerGameStat
	found := false
	for _, s := range m.stats[playerID] {
		if !found || s.Date.After(latest.Date) {
			latest = s
			found = true
		}
	}
	return latest, found, nil
}

func (m *Memory) PlayerGameStats(_ context.Context, playerID string) ([]domain.PlayerGameStat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.PlayerGameStat, 0, len(m.stats[playerID]))
	for _, s := range m.stats[playerID] {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Memory) RosterEntries(_ context.Context) ([]domain.RosterEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.RosterEntry, 0, len(m.roster))
	for _, e := range m.roster {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func venueKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
