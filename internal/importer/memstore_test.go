package importer

// memstore_test.go is an in-memory Store used to exercise the upsert
// engine without a database. It mirrors the conventions of the real
// store: lookups return (nil, nil) when nothing matches, Create fills in
// surrogate ids, and returned entities are copies so callers cannot
// mutate stored state in place.

import (
	"context"

	"github.com/askelund/bgastats/internal/store"
)

type memStore struct {
	nextID int64

	games             map[int64]store.Game // by surrogate id
	players           map[int64]store.Player
	gameStats         map[int64]store.PlayerGameStat
	matches           map[int64]store.Match
	moves             map[int64][]store.MatchMove // by match id
	tournaments       map[int64]store.Tournament
	tournamentMatches map[int64]store.TournamentMatch
	tournamentPlayers map[int64][]store.TournamentMatchPlayer // by tournament match id
}

func newMemStore() *memStore {
	return &memStore{
		games:             make(map[int64]store.Game),
		players:           make(map[int64]store.Player),
		gameStats:         make(map[int64]store.PlayerGameStat),
		matches:           make(map[int64]store.Match),
		moves:             make(map[int64][]store.MatchMove),
		tournaments:       make(map[int64]store.Tournament),
		tournamentMatches: make(map[int64]store.TournamentMatch),
		tournamentPlayers: make(map[int64][]store.TournamentMatchPlayer),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) GameByBGAID(_ context.Context, bgaID int64) (*store.Game, error) {
	for _, g := range m.games {
		if g.BGAGameID == bgaID {
			g := g
			return &g, nil
		}
	}
	return nil, nil
}

func (m *memStore) GameByName(_ context.Context, name string) (*store.Game, error) {
	for _, g := range m.games {
		if g.Name == name {
			g := g
			return &g, nil
		}
	}
	return nil, nil
}

func (m *memStore) MinPlaceholderGameID(_ context.Context) (int64, bool, error) {
	var min int64
	found := false
	for _, g := range m.games {
		if g.BGAGameID < 0 && (!found || g.BGAGameID < min) {
			min = g.BGAGameID
			found = true
		}
	}
	return min, found, nil
}

func (m *memStore) CreateGame(_ context.Context, g *store.Game) error {
	g.ID = m.id()
	m.games[g.ID] = *g
	return nil
}

func (m *memStore) UpdateGame(_ context.Context, g *store.Game) error {
	m.games[g.ID] = *g
	return nil
}

func (m *memStore) PlayerByBGAID(_ context.Context, bgaID int64) (*store.Player, error) {
	for _, p := range m.players {
		if p.BGAPlayerID == bgaID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreatePlayer(_ context.Context, p *store.Player) error {
	p.ID = m.id()
	m.players[p.ID] = *p
	return nil
}

func (m *memStore) UpdatePlayer(_ context.Context, p *store.Player) error {
	m.players[p.ID] = *p
	return nil
}

func (m *memStore) PlayerGameStatFor(_ context.Context, playerID, gameID int64) (*store.PlayerGameStat, error) {
	for _, s := range m.gameStats {
		if s.PlayerID == playerID && s.GameID == gameID {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreatePlayerGameStat(_ context.Context, st *store.PlayerGameStat) error {
	st.ID = m.id()
	m.gameStats[st.ID] = *st
	return nil
}

func (m *memStore) UpdatePlayerGameStat(_ context.Context, st *store.PlayerGameStat) error {
	m.gameStats[st.ID] = *st
	return nil
}

func (m *memStore) MatchByBGATableID(_ context.Context, tableID int64) (*store.Match, error) {
	for _, mt := range m.matches {
		if mt.BGATableID == tableID {
			mt := mt
			return &mt, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateMatch(_ context.Context, mt *store.Match) error {
	mt.ID = m.id()
	m.matches[mt.ID] = *mt
	return nil
}

func (m *memStore) UpdateMatch(_ context.Context, mt *store.Match) error {
	m.matches[mt.ID] = *mt
	return nil
}

func (m *memStore) DeleteMatchMoves(_ context.Context, matchID int64) error {
	delete(m.moves, matchID)
	return nil
}

func (m *memStore) CreateMatchMove(_ context.Context, mv *store.MatchMove) error {
	mv.ID = m.id()
	m.moves[mv.MatchID] = append(m.moves[mv.MatchID], *mv)
	return nil
}

func (m *memStore) TournamentByBGAID(_ context.Context, bgaID int64) (*store.Tournament, error) {
	for _, tr := range m.tournaments {
		if tr.BGATournamentID == bgaID {
			tr := tr
			return &tr, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateTournament(_ context.Context, tr *store.Tournament) error {
	tr.ID = m.id()
	m.tournaments[tr.ID] = *tr
	return nil
}

func (m *memStore) UpdateTournament(_ context.Context, tr *store.Tournament) error {
	m.tournaments[tr.ID] = *tr
	return nil
}

func (m *memStore) DeleteTournamentMatches(_ context.Context, tournamentID int64) error {
	for id, tm := range m.tournamentMatches {
		if tm.TournamentID == tournamentID {
			delete(m.tournamentPlayers, id)
			delete(m.tournamentMatches, id)
		}
	}
	return nil
}

func (m *memStore) CreateTournamentMatch(_ context.Context, tm *store.TournamentMatch) error {
	tm.ID = m.id()
	m.tournamentMatches[tm.ID] = *tm
	return nil
}

func (m *memStore) CreateTournamentMatchPlayer(_ context.Context, p *store.TournamentMatchPlayer) error {
	p.ID = m.id()
	m.tournamentPlayers[p.TournamentMatchID] = append(m.tournamentPlayers[p.TournamentMatchID], *p)
	return nil
}
