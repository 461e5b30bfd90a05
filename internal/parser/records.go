// Package parser turns raw bookmarklet exports into validated records.
//
// Each of the four export formats has its own parse function returning a
// closed record type. Parsers are pure: they never touch storage, and any
// failure (ValidationError or ParseError) means zero records were produced.
// Field semantics intentionally mirror the platform exports; values like
// ELO "N/A", rank "", or move number "null" pass through untouched.
package parser

// GameRecord is one row of a game_list export: an authoritative catalog
// entry keyed by the platform game id.
type GameRecord struct {
	BGAGameID   int64
	Name        string
	DisplayName string
	Status      string // alpha, beta, or published
	Premium     bool
}

// PlayerRecord aggregates all rows of a player_stats export belonging to
// one platform player id: exactly one XP row, exactly one Recent-games
// row, and any number of per-game stat rows.
type PlayerRecord struct {
	BGAPlayerID   int64
	Name          string
	XP            int
	Karma         int
	MatchesTotal  int
	WinsTotal     int
	Abandoned     int
	Timeout       int
	RecentMatches int
	LastSeenDays  int
	GameStats     []PlayerGameStatRecord
}

// PlayerGameStatRecord is one per-game stat row. The game is identified by
// name only; the importer resolves it to a catalog entry or a placeholder.
// Elo and Rank are opaque strings; empty means the platform reported none.
type PlayerGameStatRecord struct {
	GameName string
	Elo      string
	Rank     string
	Played   int
	Won      int
}

// MatchRecord is a full move_stats export: a single table with its ordered
// move timeline. Every row of the document must agree on table id and
// game name.
type MatchRecord struct {
	BGATableID int64
	GameName   string
	Moves      []MoveRecord
}

// MoveRecord is one move row. MoveNo may be the literal string "null" and
// move numbers may repeat; insertion order is the only reliable ordering.
type MoveRecord struct {
	MoveNo        string
	DatetimeLocal string
	DatetimeExcel string
	PlayerName    string
	RemainingTime string // may be empty
}

// TournamentRecord is one tournament from a tournament_stats export:
// a summary row plus the match rows that referenced it.
type TournamentRecord struct {
	BGATournamentID int64
	Name            string
	GameName        string
	StartTime       string
	EndTime         string
	Rounds          int
	RoundLimit      int
	TotalMatches    int
	TimeoutMatches  int
	PlayerCount     int
	Matches         []TournamentMatchRecord
}

// TournamentMatchRecord is one match row within a tournament.
type TournamentMatchRecord struct {
	BGATableID int64
	IsTimeout  bool
	Progress   int
	Players    []TournamentPlayerRecord
}

// TournamentPlayerRecord is one (name, remaining time, points) triple from
// a match row. RemainingTimeSeconds may be negative when the player
// timed out.
type TournamentPlayerRecord struct {
	Name                 string
	RemainingTimeSeconds int
	Points               int
}
