package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// matchupRe parses the provider's event name, e.g.
// "Los Angeles Dodgers at Chicago Cubs" -> away, home.
var matchupRe = regexp.MustCompile(`^(.+?)\s+at\s+(.+)$`)

// shortDateRe parses the provider's abbreviated game-log date, e.g. "Sat 8/30".
var shortDateRe = regexp.MustCompile(`^[A-Za-z]{3}\s+(\d{1,2})/(\d{1,2})$`)

// opponentAliases folds provider abbreviation variants into the controlled
// vocabulary. Unlisted abbreviations pass through uppercased.
var opponentAliases = map[string]string{
	"AZ":  "ARI",
	"CHW": "CWS",
	"KCR": "KC",
	"SDP": "SD",
	"SFG": "SF",
	"TBR": "TB",
	"WSN": "WSH",
	"LAD": "LAD",
}

// parseMatchup splits "Away Team at Home Team" into its sides.
func parseMatchup(name string) (away, home string, ok bool) {
	m := matchupRe.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// parseEventTime normalizes a provider timestamp to UTC. Accepts RFC 3339 and
// the provider's minute-precision variant ("2006-01-02T15:04Z").
func parseEventTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable event time %q", s)
}

// parseGameLogDate normalizes a game-log row date to UTC midnight. Accepts
// ISO dates and the abbreviated "Sat 8/30" form, which needs the season year.
func parseGameLogDate(s string, seasonYear int) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := parseEventTime(s); err == nil {
		return t.Truncate(24 * time.Hour), nil
	}
	m := shortDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("unparseable game date %q", s)
	}
	month, day := atoi(m[1]), atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("game date %q out of range", s)
	}
	return time.Date(seasonYear, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// normalizeOpponent strips the home/away prefix from a game-log opponent cell
// ("vs ARI", "@SD") and folds the abbreviation into the controlled vocabulary.
// Returns home=true for "vs" opponents.
func normalizeOpponent(s string) (abbrev string, home bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "vs "):
		s, home = s[3:], true
	case strings.HasPrefix(s, "vs"):
		s, home = s[2:], true
	case strings.HasPrefix(s, "@"):
		s, home = s[1:], false
	default:
		home = true
	}
	abbrev = strings.ToUpper(strings.TrimSpace(s))
	if canonical, ok := opponentAliases[abbrev]; ok {
		abbrev = canonical
	}
	return abbrev, home
}

// atoi is a digits-only Atoi; callers have already regexp-matched the input.
func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
