// Package format classifies raw export payloads into one of the four
// known bookmarklet formats.
//
// Detection is structural: each format leaves an unmistakable fingerprint
// in its delimiters and marker values, and the formats are mutually
// exclusive by construction of the bookmarklets that emit them. Detection
// looks at the whole payload, never at single lines in isolation, and has
// no side effects.
package format

import "strings"

// Format identifies one of the known export formats, or Unknown.
type Format string

const (
	GameList        Format = "game_list"
	PlayerStats     Format = "player_stats"
	MoveStats       Format = "move_stats"
	TournamentStats Format = "tournament_stats"
	Unknown         Format = "unknown"
)

// Valid reports whether f names a concrete parseable format.
func Valid(f Format) bool {
	switch f {
	case GameList, PlayerStats, MoveStats, TournamentStats:
		return true
	}
	return false
}

// All lists the concrete formats in detection order.
func All() []Format {
	return []Format{PlayerStats, MoveStats, TournamentStats, GameList}
}

// Detect classifies a raw payload. Rules are checked in order; the first
// match wins:
//
//  1. player_stats: both an "XP" and a "Recent games" marker row appear
//     in tab-delimited position.
//  2. move_stats: semicolon-delimited with no tab characters at all.
//  3. tournament_stats: a double tab somewhere, plus at least one line of
//     11+ tab-separated fields whose third field is "0" or "1".
//  4. game_list: first non-empty line has exactly 5 tab-separated fields,
//     a numeric first field, and "0" or "1" in the fifth.
//
// Anything else is Unknown; callers must surface that as a classification
// failure rather than dropping the payload.
func Detect(raw string) Format {
	if strings.TrimSpace(raw) == "" {
		return Unknown
	}

	if strings.Contains(raw, "\tXP\t") && strings.Contains(raw, "\tRecent games\t") {
		return PlayerStats
	}

	if strings.Contains(raw, ";") && !strings.Contains(raw, "\t") {
		return MoveStats
	}

	if strings.Contains(raw, "\t\t") && hasTournamentMatchLine(raw) {
		return TournamentStats
	}

	first := strings.Split(strings.TrimSpace(raw), "\n")[0]
	cols := strings.Split(first, "\t")
	if len(cols) == 5 && isDigits(strings.TrimSpace(cols[0])) {
		if flag := strings.TrimSpace(cols[4]); flag == "0" || flag == "1" {
			return GameList
		}
	}

	return Unknown
}

// hasTournamentMatchLine looks for a wide tab-delimited line whose third
// field is a 0/1 timeout flag, the signature of a tournament match row.
func hasTournamentMatchLine(raw string) bool {
	for _, line := range strings.Split(raw, "\n") {
		if strings.Count(line, "\t") < 10 {
			continue
		}
		cols := strings.Split(line, "\t")
		if f := strings.TrimSpace(cols[2]); f == "0" || f == "1" {
			return true
		}
	}
	return false
}

// isDigits reports whether s is non-empty and all ASCII digits. Signs are
// rejected; catalog ids on the wire are plain unsigned decimals.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
