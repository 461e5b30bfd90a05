package parser

// player_stats.go parses the player statistics export.
//
// The export interleaves three row shapes, all 7 tab-separated columns,
// grouped by the numeric platform player id in column 2 (names are not
// stable or unique on the platform):
//
//	NAME \t ID \t XP           \t xp \t karma \t total_matches \t total_wins
//	NAME \t ID \t Recent games \t abandoned \t timeout \t recent \t last_seen_days
//	NAME \t ID \t <game name>  \t elo \t rank \t played \t won
//
// Rows for one player may be scattered across the document. After all rows
// are consumed, every player must have received exactly one XP row and one
// Recent-games row; a player missing either fails validation.

import (
	"fmt"
	"strconv"
	"strings"
)

// playerRowXP and playerRowRecent are the two marker values in column 3.
// Anything else in that column is a game name.
const (
	playerRowXP     = "XP"
	playerRowRecent = "Recent games"
)

// playerBuilder accumulates rows for one player id until validation.
type playerBuilder struct {
	rec        PlayerRecord
	seenXP     bool
	seenRecent bool
}

// ParsePlayerStats parses a player_stats export into one record per
// distinct player id, in first-appearance order.
func ParsePlayerStats(raw string) ([]PlayerRecord, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ValidationError{Msg: "Input text is empty"}
	}

	builders := make(map[int64]*playerBuilder)
	var order []int64

	for _, l := range numberedLines(raw) {
		cols := strings.Split(l.text, "\t")
		if len(cols) < 7 {
			return nil, parseErrorf(l.num, "Expected at least 7 columns, got %d", len(cols))
		}

		name := strings.TrimSpace(cols[0])
		if name == "" {
			return nil, parseErrorf(l.num, "Player name is empty")
		}

		id, err := strconv.ParseInt(strings.TrimSpace(cols[1]), 10, 64)
		if err != nil {
			return nil, parseErrorf(l.num, "Player ID must be numeric, got '%s'", cols[1])
		}

		b, ok := builders[id]
		if !ok {
			b = &playerBuilder{rec: PlayerRecord{BGAPlayerID: id, Name: name}}
			builders[id] = b
			order = append(order, id)
		}

		switch rowType := strings.TrimSpace(cols[2]); rowType {
		case playerRowXP:
			if err := parseXPRow(b, cols); err != nil {
				return nil, parseErrorf(l.num, "%s", err)
			}
		case playerRowRecent:
			if err := parseRecentRow(b, cols); err != nil {
				return nil, parseErrorf(l.num, "%s", err)
			}
		default:
			if err := parseGameRow(b, cols); err != nil {
				return nil, parseErrorf(l.num, "%s", err)
			}
		}
	}

	players := make([]PlayerRecord, 0, len(order))
	for _, id := range order {
		b := builders[id]
		if !b.seenXP {
			return nil, validationErrorf("Player '%s' (ID: %d) missing XP row", b.rec.Name, id)
		}
		if !b.seenRecent {
			return nil, validationErrorf("Player '%s' (ID: %d) missing Recent games row", b.rec.Name, id)
		}
		players = append(players, b.rec)
	}

	if len(players) == 0 {
		return nil, &ValidationError{Msg: "No valid player data found"}
	}

	return players, nil
}

func parseXPRow(b *playerBuilder, cols []string) error {
	if len(cols) != 7 {
		return fmt.Errorf("XP row must have exactly 7 columns")
	}

	vals, err := intColumns(cols[3:7], "XP row")
	if err != nil {
		return err
	}

	b.rec.XP = vals[0]
	b.rec.Karma = vals[1]
	b.rec.MatchesTotal = vals[2]
	b.rec.WinsTotal = vals[3]
	b.seenXP = true
	return nil
}

func parseRecentRow(b *playerBuilder, cols []string) error {
	if len(cols) != 7 {
		return fmt.Errorf("Recent games row must have exactly 7 columns")
	}

	vals, err := intColumns(cols[3:7], "Recent games row")
	if err != nil {
		return err
	}

	b.rec.Abandoned = vals[0]
	b.rec.Timeout = vals[1]
	b.rec.RecentMatches = vals[2]
	b.rec.LastSeenDays = vals[3]
	b.seenRecent = true
	return nil
}

func parseGameRow(b *playerBuilder, cols []string) error {
	if len(cols) != 7 {
		return fmt.Errorf("Game row must have exactly 7 columns")
	}

	gameName := strings.TrimSpace(cols[2])
	if gameName == "" {
		return fmt.Errorf("Game name is empty")
	}

	vals, err := intColumns(cols[5:7], "Game row")
	if err != nil {
		return err
	}

	// ELO may be "N/A", rank may be absent entirely. Both pass through
	// as opaque strings.
	b.rec.GameStats = append(b.rec.GameStats, PlayerGameStatRecord{
		GameName: gameName,
		Elo:      strings.TrimSpace(cols[3]),
		Rank:     strings.TrimSpace(cols[4]),
		Played:   vals[0],
		Won:      vals[1],
	})
	return nil
}

// intColumns parses a run of columns as integers, naming the row shape in
// the error so the line-level wrapper reads naturally.
func intColumns(cols []string, rowKind string) ([]int, error) {
	vals := make([]int, len(cols))
	for i, c := range cols {
		v, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return nil, fmt.Errorf("%s has invalid numeric value '%s'", rowKind, strings.TrimSpace(c))
		}
		vals[i] = v
	}
	return vals, nil
}
