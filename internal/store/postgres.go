package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
)

// Postgres is the durable Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a pool from a connection URL and verifies connectivity.
func NewPostgres(ctx context.Context, databaseURL string, maxConns int32) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Postgres) HealthCheck(ctx context.Context) error {
	var n int
	return p.pool.QueryRow(ctx, "SELECT 1").Scan(&n)
}

// Migrate creates the schema when absent. Idempotent.
func (p *Postgres) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS roster_entries (
		external_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		team TEXT NOT NULL DEFAULT '',
		uniform_number INT,
		positions JSONB NOT NULL DEFAULT '[]',
		height TEXT,
		weight INT,
		birth_date DATE,
		bats TEXT,
		throws TEXT,
		status TEXT NOT NULL,
		last_updated TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS venues (
		name TEXT PRIMARY KEY,
		city TEXT NOT NULL DEFAULT '',
		region TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		primary_team TEXT NOT NULL DEFAULT '',
		capacity INT NOT NULL DEFAULT 0,
		surface TEXT NOT NULL DEFAULT '',
		roof TEXT NOT NULL DEFAULT '',
		opened_year INT NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS games (
		external_id TEXT PRIMARY KEY,
		start_time TIMESTAMPTZ NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		venue_name TEXT NOT NULL DEFAULT '',
		venue_city TEXT NOT NULL DEFAULT '',
		venue_region TEXT NOT NULL DEFAULT '',
		venue_country TEXT NOT NULL DEFAULT '',
		neutral_site BOOLEAN NOT NULL DEFAULT FALSE,
		attendance INT NOT NULL DEFAULT 0,
		duration TEXT NOT NULL DEFAULT '',
		day_of_week TEXT NOT NULL DEFAULT '',
		night_game BOOLEAN,
		extra_innings BOOLEAN NOT NULL DEFAULT FALSE,
		home_score INT,
		away_score INT,
		final BOOLEAN NOT NULL DEFAULT FALSE,
		outcome TEXT NOT NULL DEFAULT '',
		weather JSONB
	)`,
	`CREATE TABLE IF NOT EXISTS player_game_stats (
		player_id TEXT NOT NULL,
		game_date DATE NOT NULL,
		player_name TEXT NOT NULL DEFAULT '',
		game_id TEXT NOT NULL DEFAULT '',
		opponent TEXT NOT NULL DEFAULT '',
		home BOOLEAN NOT NULL DEFAULT FALSE,
		team_result TEXT NOT NULL DEFAULT '',
		stats JSONB NOT NULL,
		cumulative JSONB NOT NULL,
		processed_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (player_id, game_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_games_start_time ON games (start_time)`,
}

func (p *Postgres) UpsertRosterEntry(ctx context.Context, e domain.RosterEntry) error {
	positions, err := json.Marshal(e.Positions)
	if err != nil {
		return fmt.Errorf("marshal positions: %w", err)
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO roster_entries (
			external_id, name, team, uniform_number, positions, height,
			weight, birth_date, bats, throws, status, last_updated
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (external_id) DO UPDATE SET
			name = EXCLUDED.name,
			team = EXCLUDED.team,
			uniform_number = EXCLUDED.uniform_number,
			positions = EXCLUDED.positions,
			height = EXCLUDED.height,
			weight = EXCLUDED.weight,
			birth_date = EXCLUDED.birth_date,
			bats = EXCLUDED.bats,
			throws = EXCLUDED.throws,
			status = EXCLUDED.status,
			last_updated = EXCLUDED.last_updated`,
		e.ExternalID, e.Name, e.Team, zeroNil(e.UniformNumber), positions, emptyNil(e.Height),
		zeroNil(e.Weight), e.BirthDate, handednessNil(e.Bats), handednessNil(e.Throws),
		string(e.Status), e.LastUpdated,
	)
	return err
}

func (p *Postgres) UpsertVenue(ctx context.Context, v domain.Venue) error {
	var lat, lon *float64
	if v.Coordinates != nil {
		lat, lon = &v.Coordinates.Lat, &v.Coordinates.Lon
	}
	// COALESCE keeps stored coordinates: once set they are immutable.
	_, err := p.pool.Exec(ctx, `
		INSERT INTO venues (
			name, city, region, country, lat, lon, primary_team,
			capacity, surface, roof, opened_year, active
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (name) DO UPDATE SET
			city = EXCLUDED.city,
			region = EXCLUDED.region,
			country = EXCLUDED.country,
			lat = COALESCE(venues.lat, EXCLUDED.lat),
			lon = COALESCE(venues.lon, EXCLUDED.lon),
			primary_team = EXCLUDED.primary_team,
			capacity = EXCLUDED.capacity,
			surface = EXCLUDED.surface,
			roof = EXCLUDED.roof,
			opened_year = EXCLUDED.opened_year,
			active = EXCLUDED.active`,
		v.Name, v.City, v.Region, v.Country, lat, lon, v.PrimaryTeam,
		v.Capacity, v.Surface, v.Roof, v.OpenedYear, v.Active,
	)
	return err
}

func (p *Postgres) UpsertScheduleEntry(ctx context.Context, e domain.ScheduleEntry) error {
	// A schedule sync must not clobber scores a result sync already wrote.
	_, err := p.pool.Exec(ctx, `
		INSERT INTO games (
			external_id, start_time, home_team, away_team, venue_name,
			venue_city, venue_region, venue_country, neutral_site,
			attendance, duration, day_of_week, night_game, extra_innings
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (external_id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			venue_name = EXCLUDED.venue_name,
			venue_city = EXCLUDED.venue_city,
			venue_region = EXCLUDED.venue_region,
			venue_country = EXCLUDED.venue_country,
			neutral_site = EXCLUDED.neutral_site,
			attendance = EXCLUDED.attendance,
			duration = EXCLUDED.duration,
			day_of_week = EXCLUDED.day_of_week,
			night_game = EXCLUDED.night_game,
			extra_innings = EXCLUDED.extra_innings`,
		e.ExternalID, e.Start, e.HomeTeam, e.AwayTeam, e.VenueName,
		e.VenueCity, e.VenueRegion, e.VenueCountry, e.NeutralSite,
		e.Attendance, e.Duration, e.DayOfWeek, e.NightGame, e.ExtraInnings,
	)
	return err
}

func (p *Postgres) UpsertGameResult(ctx context.Context, g domain.GameResult) error {
	var weather []byte
	if g.Weather != nil {
		var err error
		weather, err = json.Marshal(g.Weather)
		if err != nil {
			return fmt.Errorf("marshal weather: %w", err)
		}
	}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO games (
			external_id, start_time, home_team, away_team, venue_name,
			venue_city, venue_region, venue_country, neutral_site,
			attendance, duration, day_of_week, night_game, extra_innings,
			home_score, away_score, final, outcome, weather
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (external_id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			venue_name = EXCLUDED.venue_name,
			venue_city = EXCLUDED.venue_city,
			venue_region = EXCLUDED.venue_region,
			venue_country = EXCLUDED.venue_country,
			neutral_site = EXCLUDED.neutral_site,
			attendance = EXCLUDED.attendance,
			duration = EXCLUDED.duration,
			day_of_week = EXCLUDED.day_of_week,
			night_game = EXCLUDED.night_game,
			extra_innings = EXCLUDED.extra_innings,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			final = EXCLUDED.final,
			outcome = EXCLUDED.outcome,
			weather = COALESCE(EXCLUDED.weather, games.weather)`,
		g.ExternalID, g.Start, g.HomeTeam, g.AwayTeam, g.VenueName,
		g.VenueCity, g.VenueRegion, g.VenueCountry, g.NeutralSite,
		g.Attendance, g.Duration, g.DayOfWeek, g.NightGame, g.ExtraInnings,
		g.HomeScore, g.AwayScore, g.Final, string(g.Outcome), weather,
	)
	return err
}

func (p *Postgres) UpsertPlayerGameStat(ctx context.Context, s domain.PlayerGameStat) error {
	stats, err := json.Marshal(s.BattingStats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	cumulative, err := json.Marshal(s.Cumulative)
	if err != nil {
		return fmt.Errorf("marshal cumulative: %w", err)
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO player_game_stats (
			player_id, game_date, player_name, game_id, opponent,
			home, team_result, stats, cumulative, processed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (player_id, game_date) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			game_id = EXCLUDED.game_id,
			opponent = EXCLUDED.opponent,
			home = EXCLUDED.home,
			team_result = EXCLUDED.team_result,
			stats = EXCLUDED.stats,
			cumulative = EXCLUDED.cumulative,
			processed_at = EXCLUDED.processed_at`,
		s.PlayerID, s.Date.UTC(), s.PlayerName, s.GameID, s.Opponent,
		s.Home, string(s.TeamResult), stats, cumulative, s.ProcessedAt,
	)
	return err
}

func (p *Postgres) GetGameResult(ctx context.Context, externalID string) (domain.GameResult, bool, error) {
	var (
		g       domain.GameResult
		outcome string
		weather []byte
		home    *int
		away    *int
	)
	err := p.pool.QueryRow(ctx, `
		SELECT external_id, start_time, home_team, away_team, venue_name,
			venue_city, venue_region, venue_country, neutral_site,
			attendance, duration, day_of_week, night_game, extra_innings,
			home_score, away_score, final, outcome, weather
		FROM games WHERE external_id = $1`, externalID,
	).Scan(
		&g.ExternalID, &g.Start, &g.HomeTeam, &g.AwayTeam, &g.VenueName,
		&g.VenueCity, &g.VenueRegion, &g.VenueCountry, &g.NeutralSite,
		&g.Attendance, &g.Duration, &g.DayOfWeek, &g.NightGame, &g.ExtraInnings,
		&home, &away, &g.Final, &outcome, &weather,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.GameResult{}, false, nil
	}
	if err != nil {
		return domain.GameResult{}, false, err
	}
	if home != nil {
		g.HomeScore = *home
	}
	if away != nil {
		g.AwayScore = *away
	}
	g.Outcome = domain.Outcome(outcome)
	if len(weather) > 0 {
		var w domain.WeatherSnapshot
		if err := json.Unmarshal(weather, &w); err != nil {
			return domain.GameResult{}, false, fmt.Errorf("unmarshal weather: %w", err)
		}
		g.Weather = &w
	}
	return g, true, nil
}

func (p *Postgres) GetVenue(ctx context.Context, name string) (domain.Venue, bool, error) {
	var (
		v        domain.Venue
		lat, lon *float64
	)
	err := p.pool.QueryRow(ctx, `
		SELECT name, city, region, country, lat, lon, primary_team,
			capacity, surface, roof, opened_year, active
		FROM venues WHERE name = $1`, name,
	).Scan(
		&v.Name, &v.City, &v.Region, &v.Country, &lat, &lon, &v.PrimaryTeam,
		&v.Capacity, &v.Surface, &v.Roof, &v.OpenedYear, &v.Active,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Venue{}, false, nil
	}
	if err != nil {
		return domain.Venue{}, false, err
	}
	if lat != nil && lon != nil {
		v.Coordinates = &domain.Coordinates{Lat: *lat, Lon: *lon}
	}
	return v, true, nil
}

func (p *Postgres) LatestPlayerGameStat(ctx context.Context, playerID string) (domain.PlayerGameStat, bool, error) {
	rows, err := p.pool.Query(ctx, statSelect+` WHERE player_id = $1 ORDER BY game_date DESC LIMIT 1`, playerID)
	if err != nil {
		return domain.PlayerGameStat{}, false, err
	}
	stats, err := scanStats(rows)
	if err != nil {
		return domain.PlayerGameStat{}, false, err
	}
	if len(stats) == 0 {
		return domain.PlayerGameStat{}, false, nil
	}
	return stats[0], true, nil
}

func (p *Postgres) PlayerGameStats(ctx context.Context, playerID string) ([]domain.PlayerGameStat, error) {
	rows, err := p.pool.Query(ctx, statSelect+` WHERE player_id = $1 ORDER BY game_date ASC`, playerID)
	if err != nil {
		return nil, err
	}
	return scanStats(rows)
}

func (p *Postgres) RosterEntries(ctx context.Context) ([]domain.RosterEntry, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT external_id, name, team, uniform_number, positions, height,
			weight, birth_date, bats, throws, status, last_updated
		FROM roster_entries ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RosterEntry
	for rows.Next() {
		var (
			e         domain.RosterEntry
			number    *int
			positions []byte
			height    *string
			weight    *int
			bats      *string
			throws    *string
			status    string
		)
		if err := rows.Scan(
			&e.ExternalID, &e.Name, &e.Team, &number, &positions, &height,
			&weight, &e.BirthDate, &bats, &throws, &status, &e.LastUpdated,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(positions, &e.Positions); err != nil {
			return nil, fmt.Errorf("unmarshal positions: %w", err)
		}
		if number != nil {
			e.UniformNumber = *number
		}
		if height != nil {
			e.Height = *height
		}
		if weight != nil {
			e.Weight = *weight
		}
		if bats != nil {
			h := domain.Handedness(*bats)
			e.Bats = &h
		}
		if throws != nil {
			h := domain.Handedness(*throws)
			e.Throws = &h
		}
		e.Status = domain.RosterStatus(status)
		out = append(out, e)
	}
	return out, rows.Err()
}

const statSelect = `
	SELECT player_id, game_date, player_name, game_id, opponent,
		home, team_result, stats, cumulative, processed_at
	FROM player_game_stats`

func scanStats(rows pgx.Rows) ([]domain.PlayerGameStat, error) {
	defer rows.Close()
	var out []domain.PlayerGameStat
	for rows.Next() {
		var (
			s          domain.PlayerGameStat
			result     string
			stats      []byte
			cumulative []byte
		)
		if err := rows.Scan(
			&s.PlayerID, &s.Date, &s.PlayerName, &s.GameID, &s.Opponent,
			&s.Home, &result, &stats, &cumulative, &s.ProcessedAt,
		); err != nil {
			return nil, err
		}
		s.TeamResult = domain.Outcome(result)
		if err := json.Unmarshal(stats, &s.BattingStats); err != nil {
			return nil, fmt.Errorf("unmarshal stats: %w", err)
		}
		if err := json.Unmarshal(cumulative, &s.Cumulative); err != nil {
			return nil, fmt.Errorf("unmarshal cumulative: %w", err)
		}
		s.SinglesCount = s.Singles()
		s.TotalBasesCount = s.TotalBases()
		out = append(out, s)
	}
	return out, rows.Err()
}

func zeroNil(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func emptyNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func handednessNil(h *domain.Handedness) *string {
	if h == nil {
		return nil
	}
	s := string(*h)
	return &s
}
