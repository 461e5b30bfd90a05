package parser

import (
	"strconv"
	"strings"
)

// gameStatuses are the only values the catalog export may carry in its
// status column. Placeholder games use "unknown", but that never appears
// on the wire.
var gameStatuses = map[string]bool{
	"alpha":     true,
	"beta":      true,
	"published": true,
}

// ParseGameList parses a game_list export.
//
// Grammar, one game per line:
//
//	ID \t NAME \t DISPLAY_NAME \t STATUS \t PREMIUM
//
// with STATUS in {alpha, beta, published} and PREMIUM in {0, 1}. Any
// violation aborts the whole parse; there are no partial game lists.
func ParseGameList(raw string) ([]GameRecord, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ValidationError{Msg: "Input text is empty"}
	}

	var games []GameRecord

	for _, l := range numberedLines(raw) {
		cols := strings.Split(l.text, "\t")
		if len(cols) != 5 {
			return nil, parseErrorf(l.num, "Expected 5 columns, got %d", len(cols))
		}

		id, err := strconv.ParseInt(strings.TrimSpace(cols[0]), 10, 64)
		if err != nil {
			return nil, parseErrorf(l.num, "BGA game ID must be numeric, got '%s'", cols[0])
		}

		status := strings.TrimSpace(cols[3])
		if !gameStatuses[status] {
			return nil, parseErrorf(l.num, "Status must be alpha, beta, or published, got '%s'", status)
		}

		premium := strings.TrimSpace(cols[4])
		if premium != "0" && premium != "1" {
			return nil, parseErrorf(l.num, "Premium flag must be 0 or 1, got '%s'", premium)
		}

		games = append(games, GameRecord{
			BGAGameID:   id,
			Name:        strings.TrimSpace(cols[1]),
			DisplayName: strings.TrimSpace(cols[2]),
			Status:      status,
			Premium:     premium == "1",
		})
	}

	if len(games) == 0 {
		return nil, &ValidationError{Msg: "No valid game data found"}
	}

	return games, nil
}
