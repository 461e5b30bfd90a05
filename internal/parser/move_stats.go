package parser

import (
	"strconv"
	"strings"
)

// ParseMoveStats parses a move_stats export.
//
// Grammar, one move per line, semicolon-delimited:
//
//	TABLE_ID;GAME_NAME;MOVE_NO;DATETIME_LOCAL;DATETIME_EXCEL;PLAYER_NAME;REMAINING_TIME
//
// One document describes exactly one table: every row must carry the same
// table id and game name. MOVE_NO may be the literal "null" and
// REMAINING_TIME may be empty; both are kept verbatim.
func ParseMoveStats(raw string) (*MatchRecord, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ValidationError{Msg: "Input text is empty"}
	}

	var (
		tableID  int64
		gameName string
		seen     bool
		moves    []MoveRecord
	)

	for _, l := range numberedLines(raw) {
		cols := strings.Split(l.text, ";")
		if len(cols) != 7 {
			return nil, parseErrorf(l.num, "Expected 7 columns, got %d", len(cols))
		}

		id, err := strconv.ParseInt(strings.TrimSpace(cols[0]), 10, 64)
		if err != nil {
			return nil, parseErrorf(l.num, "Table ID must be numeric, got '%s'", cols[0])
		}

		name := strings.TrimSpace(cols[1])

		if !seen {
			tableID, gameName, seen = id, name, true
		} else {
			if id != tableID {
				return nil, parseErrorf(l.num, "Mixed table IDs found (%d and %d)", tableID, id)
			}
			if name != gameName {
				return nil, parseErrorf(l.num, "Mixed game names found ('%s' and '%s')", gameName, name)
			}
		}

		playerName := strings.TrimSpace(cols[5])
		if playerName == "" {
			return nil, parseErrorf(l.num, "Player name is empty")
		}

		moves = append(moves, MoveRecord{
			MoveNo:        strings.TrimSpace(cols[2]),
			DatetimeLocal: strings.TrimSpace(cols[3]),
			DatetimeExcel: strings.TrimSpace(cols[4]),
			PlayerName:    playerName,
			RemainingTime: strings.TrimSpace(cols[6]),
		})
	}

	if len(moves) == 0 {
		return nil, &ValidationError{Msg: "No valid move data found"}
	}

	return &MatchRecord{
		BGATableID: tableID,
		GameName:   gameName,
		Moves:      moves,
	}, nil
}
