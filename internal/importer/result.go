package importer

import "github.com/askelund/bgastats/internal/format"

// Metric names reported in import results. Each upsert path increments
// the counters for the entities it touched.
const (
	MetricPlayersCreated           = "players_created"
	MetricPlayersUpdated           = "players_updated"
	MetricGamesCreated             = "games_created"
	MetricGamesUpdated             = "games_updated"
	MetricGameStatsCreated         = "game_stats_created"
	MetricGameStatsUpdated         = "game_stats_updated"
	MetricMatchesCreated           = "matches_created"
	MetricMatchesUpdated           = "matches_updated"
	MetricMovesCreated             = "moves_created"
	MetricTournamentsCreated       = "tournaments_created"
	MetricTournamentsUpdated       = "tournaments_updated"
	MetricTournamentMatchesCreated = "tournament_matches_created"
)

// Counts maps metric names to how many entities an import created or
// updated.
type Counts map[string]int

func (c Counts) add(metric string) {
	c[metric]++
}

// Result is the structured outcome of one import call, returned to the
// caller whether the call committed or rolled back.
type Result struct {
	Success    bool           `json:"success"`
	ImportID   string         `json:"import_id,omitempty"`
	ImportType format.Format  `json:"import_type,omitempty"`
	Results    Counts         `json:"results,omitempty"`
	Error      string         `json:"error,omitempty"`
	ErrorType  string         `json:"error_type,omitempty"`
}
