// Package domain models professional-baseball roster, schedule, game-result,
// and player-game-stat records, plus the weather enrichment attached to them.
//
// # Data Sources
//
// Roster, schedule, and box-score records come from the team's stats provider
// (ESPN-style site API). Historical weather comes from a per-hour history API
// keyed by coordinates and date. Venue coordinates come from a static table of
// known ballparks, falling back to an external geocoding service.
//
// # Positional Stat Contract
//
// The provider embeds a game's batting line as a positional numeric array.
// The order is strict and documented here once:
//
//	AB, R, H, 2B, 3B, HR, RBI, BB, HBP, SO, SB, CS, AVG, OBP, SLG, OPS
//
// A line with any other length must be treated as an extraction failure, not a
// partial record: the upstream format has changed and silent mis-mapping of
// fields is worse than a loud skip. See [StatLine].
//
// # Derived Statistics
//
//	singles     = H − 2B − 3B − HR
//	total bases = singles + 2×2B + 3×3B + 4×HR
//	XBH         = 2B + 3B + HR
//	OPS         = OBP + SLG (provider-rounded; may drift by ~0.001)
//
// Cumulative season totals ([CumulativeTotals]) advance one game at a time in
// chronological order and are non-decreasing for any accepted history.
//
// # Conventions
//
// All timestamps are stored UTC; game dates are UTC midnight of the calendar
// date. Outcomes (W/L/T) are always from the tracked team's perspective.
package domain
