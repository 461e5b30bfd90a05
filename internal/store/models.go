package store

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Game is a catalog entry. BGAGameID is the platform business key; while a
// game is known only by name from a player-stats export it carries a
// synthetic negative id and status "unknown".
type Game struct {
	ID          int64
	BGAGameID   int64
	Name        string
	DisplayName string
	Status      string
	Premium     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsPlaceholder reports whether the game still has a synthetic id.
func (g *Game) IsPlaceholder() bool {
	return g.BGAGameID < 0
}

// StatusUnknown is the status stamped on placeholder games. It never
// appears on the wire.
const StatusUnknown = "unknown"

// Player holds platform-wide player statistics keyed by the platform
// player id.
type Player struct {
	ID            int64
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
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PlayerGameStat is a player's per-game statistics; unique per
// (player, game) pair. Elo and Rank stay opaque text so values like "N/A"
// or an absent rank survive round trips.
type PlayerGameStat struct {
	ID         int64
	PlayerID   int64
	GameID     int64
	Elo        pgtype.Text
	Rank       pgtype.Text
	Played     int
	Won        int
	ImportedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Match is one table's move timeline header. Moves are owned exclusively
// by the match and replaced wholesale on re-import.
type Match struct {
	ID         int64
	BGATableID int64
	GameName   string
	ImportedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MatchMove is one row of a move timeline. Seq is the insertion order
// within the source document; MoveNo is unreliable (it may repeat or be
// the literal "null") and is kept as text.
type MatchMove struct {
	ID            int64
	MatchID       int64
	Seq           int
	MoveNo        string
	PlayerName    string
	DatetimeLocal string
	DatetimeExcel string
	RemainingTime pgtype.Text
}

// Tournament summarizes one tournament keyed by the platform tournament id.
type Tournament struct {
	ID              int64
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
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TournamentMatch is one match within a tournament; owned by the
// tournament and replaced wholesale on re-import.
type TournamentMatch struct {
	ID           int64
	TournamentID int64
	BGATableID   int64
	IsTimeout    bool
	Progress     int
}

// TournamentMatchPlayer is one player's result in a tournament match.
// RemainingTimeSeconds is negative when the player timed out.
type TournamentMatchPlayer struct {
	ID                   int64
	TournamentMatchID    int64
	PlayerName           string
	RemainingTimeSeconds int
	Points               int
}
