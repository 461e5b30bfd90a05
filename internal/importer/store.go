package importer

import (
	"context"

	"github.com/askelund/bgastats/internal/store"
)

// Store is the storage surface the upsert engine needs for one import
// call. *store.TxStore satisfies it bound to a pgx transaction; tests use
// an in-memory implementation.
//
// Lookup methods return (nil, nil) when no row matches; Create methods
// fill in the entity's surrogate id.
type Store interface {
	GameByBGAID(ctx context.Context, bgaID int64) (*store.Game, error)
	GameByName(ctx context.Context, name string) (*store.Game, error)
	MinPlaceholderGameID(ctx context.Context) (int64, bool, error)
	CreateGame(ctx context.Context, g *store.Game) error
	UpdateGame(ctx context.Context, g *store.Game) error

	PlayerByBGAID(ctx context.Context, bgaID int64) (*store.Player, error)
	CreatePlayer(ctx context.Context, p *store.Player) error
	UpdatePlayer(ctx context.Context, p *store.Player) error

	PlayerGameStatFor(ctx context.Context, playerID, gameID int64) (*store.PlayerGameStat, error)
	CreatePlayerGameStat(ctx context.Context, st *store.PlayerGameStat) error
	UpdatePlayerGameStat(ctx context.Context, st *store.PlayerGameStat) error

	MatchByBGATableID(ctx context.Context, tableID int64) (*store.Match, error)
	CreateMatch(ctx context.Context, m *store.Match) error
	UpdateMatch(ctx context.Context, m *store.Match) error
	DeleteMatchMoves(ctx context.Context, matchID int64) error
	CreateMatchMove(ctx context.Context, mv *store.MatchMove) error

	TournamentByBGAID(ctx context.Context, bgaID int64) (*store.Tournament, error)
	CreateTournament(ctx context.Context, t *store.Tournament) error
	UpdateTournament(ctx context.Context, t *store.Tournament) error
	DeleteTournamentMatches(ctx context.Context, tournamentID int64) error
	CreateTournamentMatch(ctx context.Context, tm *store.TournamentMatch) error
	CreateTournamentMatchPlayer(ctx context.Context, p *store.TournamentMatchPlayer) error
}
