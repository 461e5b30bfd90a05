package parser

// tournament_stats.go parses the tournament results export.
//
// Two row shapes share the document, distinguished by column count:
//
//	summary (exactly 11 columns, column 3 intentionally empty):
//	  TID \t NAME \t \t GAME \t START \t END \t ROUNDS \t LIMIT \t TOTAL \t TIMEOUTS \t PLAYERS
//	match (4 + 3n columns):
//	  TID \t TABLE \t IS_TIMEOUT \t PROGRESS \t (PLAYER \t TIME \t POINTS)+
//
// A match row must follow the summary row that declares its tournament id;
// the players tail must be a whole number of (name, time, points) triples.

import (
	"strconv"
	"strings"
)

// ParseTournamentStats parses a tournament_stats export into one record per
// tournament, in declaration order, each carrying its match rows.
func ParseTournamentStats(raw string) ([]TournamentRecord, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ValidationError{Msg: "Input text is empty"}
	}

	byID := make(map[int64]*TournamentRecord)
	var order []int64

	for _, l := range numberedLines(raw) {
		cols := strings.Split(l.text, "\t")
		if len(cols) < 4 {
			return nil, parseErrorf(l.num, "Expected at least 4 columns, got %d", len(cols))
		}

		id, err := strconv.ParseInt(strings.TrimSpace(cols[0]), 10, 64)
		if err != nil {
			return nil, parseErrorf(l.num, "Tournament ID must be numeric, got '%s'", cols[0])
		}

		if len(cols) == 11 {
			rec, err := parseTournamentSummary(id, cols, l.num)
			if err != nil {
				return nil, err
			}
			if _, ok := byID[id]; !ok {
				order = append(order, id)
			}
			byID[id] = rec
			continue
		}

		t, ok := byID[id]
		if !ok {
			return nil, parseErrorf(l.num, "Match row found before tournament summary")
		}
		match, err := parseTournamentMatch(cols, l.num)
		if err != nil {
			return nil, err
		}
		t.Matches = append(t.Matches, *match)
	}

	if len(order) == 0 {
		return nil, &ValidationError{Msg: "No valid tournament data found"}
	}

	out := make([]TournamentRecord, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out, nil
}

func parseTournamentSummary(id int64, cols []string, lineNum int) (*TournamentRecord, error) {
	// cols[2] is the intentionally empty column of the summary shape.
	ints := make([]int, 5)
	for i, pos := range []int{6, 7, 8, 9, 10} {
		v, err := strconv.Atoi(strings.TrimSpace(cols[pos]))
		if err != nil {
			return nil, parseErrorf(lineNum, "Failed to parse tournament summary: invalid numeric value '%s'", strings.TrimSpace(cols[pos]))
		}
		ints[i] = v
	}

	return &TournamentRecord{
		BGATournamentID: id,
		Name:            strings.TrimSpace(cols[1]),
		GameName:        strings.TrimSpace(cols[3]),
		StartTime:       strings.TrimSpace(cols[4]),
		EndTime:         strings.TrimSpace(cols[5]),
		Rounds:          ints[0],
		RoundLimit:      ints[1],
		TotalMatches:    ints[2],
		TimeoutMatches:  ints[3],
		PlayerCount:     ints[4],
	}, nil
}

func parseTournamentMatch(cols []string, lineNum int) (*TournamentMatchRecord, error) {
	tableID, err := strconv.ParseInt(strings.TrimSpace(cols[1]), 10, 64)
	if err != nil {
		return nil, parseErrorf(lineNum, "Failed to parse match row: table ID must be numeric, got '%s'", strings.TrimSpace(cols[1]))
	}

	progress, err := strconv.Atoi(strings.TrimSpace(cols[3]))
	if err != nil {
		return nil, parseErrorf(lineNum, "Failed to parse match row: invalid progress value '%s'", strings.TrimSpace(cols[3]))
	}

	playerCols := cols[4:]
	if len(playerCols)%3 != 0 {
		return nil, parseErrorf(lineNum, "Player data columns must be multiple of 3")
	}

	match := &TournamentMatchRecord{
		BGATableID: tableID,
		IsTimeout:  strings.TrimSpace(cols[2]) == "1",
		Progress:   progress,
	}

	for i := 0; i < len(playerCols); i += 3 {
		remaining, err := strconv.Atoi(strings.TrimSpace(playerCols[i+1]))
		if err != nil {
			return nil, parseErrorf(lineNum, "Failed to parse match row: invalid remaining time '%s'", strings.TrimSpace(playerCols[i+1]))
		}
		points, err := strconv.Atoi(strings.TrimSpace(playerCols[i+2]))
		if err != nil {
			return nil, parseErrorf(lineNum, "Failed to parse match row: invalid points value '%s'", strings.TrimSpace(playerCols[i+2]))
		}
		match.Players = append(match.Players, TournamentPlayerRecord{
			Name:                 strings.TrimSpace(playerCols[i]),
			RemainingTimeSeconds: remaining,
			Points:               points,
		})
	}

	return match, nil
}
