package pipeline

import (
	"time"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/validate"
)

// Sync kinds, used as report and metric labels.
const (
	KindRoster   = "roster"
	KindSchedule = "schedule"
	KindResults  = "results"
	KindGameLog  = "gamelog"
)

// Report summarizes one sync operation. Every operation returns one even on
// partial failure; only infrastructure-level unavailability surfaces as an
// error alongside it.
type Report struct {
	Kind       string    `json:"kind"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Fetched  int `json:"fetched"`
	Accepted int `json:"accepted"`
	Warned   int `json:"accepted_with_warnings"`
	Rejected int `json:"rejected"`
	Skipped  int `json:"skipped"` // extraction failures

	Warnings   []string `json:"warnings,omitempty"`
	Rejections []string `json:"rejections,omitempty"`

	// Partial marks a run cancelled between records. Already persisted
	// records remain.
	Partial bool `json:"partial"`

	// Record aggregates final-game outcomes, result syncs only.
	Record domain.TeamRecord `json:"record,omitzero"`

	Err error `json:"-"`
}

// Persisted is the number of records that reached the store.
func (r *Report) Persisted() int {
	return r.Accepted + r.Warned
}

// countVerdict folds one record's verdict into the report and reports whether
// the record proceeds to standardization.
func (r *Report) countVerdict(v validate.Verdict) bool {
	switch v.Status() {
	case validate.StatusRejected:
		r.Rejected++
		r.Rejections = append(r.Rejections, v.Rejections...)
		return false
	case validate.StatusWarnings:
		r.Warned++
		r.Warnings = append(r.Warnings, v.Warnings...)
		return true
	default:
		r.Accepted++
		return true
	}
}

// DateRange bounds a results sync. Zero endpoints leave that side open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range, inclusive on both ends.
func (dr DateRange) Contains(t time.Time) bool {
	if !dr.From.IsZero() && t.Before(dr.From) {
		return false
	}
	if !dr.To.IsZero() && t.After(dr.To) {
		return false
	}
	return true
}
