// Package validate applies the data-quality gate to extracted records before
// they are standardized and persisted.
//
// Player game stats run through an explicit stage sequence: type check, range
// check, business-logic check, cross-record check. Each stage is a pure
// function over the candidate plus an accumulating Verdict, and a stage can
// only hold or downgrade the verdict. Rejected records never reach the
// standardizer; warnings travel with the record into the run report.
package validate

import "fmt"

// Status is the terminal outcome for one record.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusWarnings Status = "accepted_with_warnings"
	StatusRejected Status = "rejected"
)

// Verdict accumulates warnings and rejection reasons as a record moves
// through the validation stages.
type Verdict struct {
	Warnings   []string
	Rejections []string
}

// Status derives the terminal status from what has accumulated.
func (v Verdict) Status() Status {
	switch {
	case len(v.Rejections) > 0:
		return StatusRejected
	case len(v.Warnings) > 0:
		return StatusWarnings
	default:
		return StatusAccepted
	}
}

// Rejected reports whether any stage rejected the record.
func (v Verdict) Rejected() bool {
	return len(v.Rejections) > 0
}

func (v *Verdict) warnf(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

func (v *Verdict) rejectf(reason, format string, args ...any) {
	v.Rejections = append(v.Rejections, reason+": "+fmt.Sprintf(format, args...))
}

// Rejection reason identifiers. Stable strings so run reports can be grouped.
const (
	ReasonUncoercible     = "required-field-uncoercible"
	ReasonNegativeCount   = "negative-counting-stat"
	ReasonHitsExceedAB    = "hits-exceed-at-bats"
	ReasonXBHExceedHits   = "extra-base-hits-exceed-hits"
	ReasonDuplicateDate   = "duplicate-player-date"
	ReasonTotalsDecreased = "cumulative-totals-decreased"
	ReasonMissingRequired = "missing-required-field"
	ReasonSameTeams       = "home-equals-away"
	ReasonScoreConflict   = "final-score-conflict"
	ReasonNoPosition      = "active-player-without-position"
	ReasonPrimaryCount    = "primary-position-count"
)
