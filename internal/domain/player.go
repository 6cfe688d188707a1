package domain

import "time"

// Position is a standard defensive position abbreviation.
type Position string

const (
	PositionPitcher     Position = "P"
	PositionCatcher     Position = "C"
	PositionFirstBase   Position = "1B"
	PositionSecondBase  Position = "2B"
	PositionThirdBase   Position = "3B"
	PositionShortstop   Position = "SS"
	PositionLeftField   Position = "LF"
	PositionCenterField Position = "CF"
	PositionRightField  Position = "RF"
	PositionDH          Position = "DH"

	// Utility markers the provider uses for players without a fixed spot.
	PositionInfield  Position = "IF"
	PositionOutfield Position = "OF"
	PositionUtility  Position = "UTL"
)

// KnownPosition reports whether p is part of the controlled position vocabulary.
func KnownPosition(p Position) bool {
	switch p {
	case PositionPitcher, PositionCatcher, PositionFirstBase, PositionSecondBase,
		PositionThirdBase, PositionShortstop, PositionLeftField, PositionCenterField,
		PositionRightField, PositionDH, PositionInfield, PositionOutfield, PositionUtility:
		return true
	}
	return false
}

// PlayerPosition pairs a position with its primary marker. A player with any
// positions has exactly one primary.
type PlayerPosition struct {
	Position Position `json:"position"`
	Primary  bool     `json:"primary"`
}

// RosterStatus is a player's roster availability.
type RosterStatus string

const (
	StatusActive    RosterStatus = "Active"
	StatusInjured   RosterStatus = "Injured"
	StatusSuspended RosterStatus = "Suspended"
)

// Handedness is a batting or throwing side: L, R, or S (switch, batting only).
type Handedness string

// RosterEntry is one player on the tracked team's roster.
type RosterEntry struct {
	ExternalID    string           `json:"external_id"`
	Name          string           `json:"name"`
	Team          string           `json:"team"`
	UniformNumber int              `json:"uniform_number,omitempty"`
	Positions     []PlayerPosition `json:"positions,omitempty"`
	Height        string           `json:"height,omitempty"` // display form, e.g. 6'2"
	Weight        int              `json:"weight,omitempty"` // pounds, 0 when unknown
	BirthDate     *time.Time       `json:"birth_date,omitempty"`
	Bats          *Handedness      `json:"bats,omitempty"`
	Throws        *Handedness      `json:"throws,omitempty"`
	Status        RosterStatus     `json:"status"`
	LastUpdated   time.Time        `json:"last_updated"`
}

// PrimaryPosition returns the entry's primary position, or "" when the player
// has no positions on record.
func (r RosterEntry) PrimaryPosition() Position {
	for _, p := range r.Positions {
		if p.Primary {
			return p.Position
		}
	}
	return ""
}
