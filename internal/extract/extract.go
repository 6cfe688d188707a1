// Package extract converts raw provider documents into typed intermediate
// records. All knowledge of upstream field names and shapes lives here, so a
// provider format change breaks exactly one package and breaks it loudly.
//
// Per-record failures are reported as skips and never abort a document;
// a document whose top-level shape is unrecognizable fails as a whole.
package extract

import (
	"errors"
	"fmt"
)

// ErrExtractionFailed marks a record that could not be extracted because a
// required field (game id, player id, date) is absent or unparseable, or the
// positional stat contract is violated. Record-scoped: the run continues.
var ErrExtractionFailed = errors.New("extraction failed")

// Skip records one record-scoped extraction failure for the run report.
type Skip struct {
	Ref    string // record identifier as best known, e.g. game id or row index
	Reason string
}

func skipf(ref, format string, args ...any) Skip {
	return Skip{Ref: ref, Reason: fmt.Sprintf(format, args...)}
}
