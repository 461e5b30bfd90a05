package importer

import (
	"context"

	"github.com/askelund/bgastats/internal/parser"
	"github.com/askelund/bgastats/internal/store"
)

// importTournamentStats upserts tournaments with their matches and player
// results. Matches are owned children: updating a tournament deletes its
// existing matches (players cascade) and inserts the new document's
// matches in full.
func importTournamentStats(ctx context.Context, st Store, tournaments []parser.TournamentRecord) (Counts, error) {
	counts := Counts{
		MetricTournamentsCreated:       0,
		MetricTournamentsUpdated:       0,
		MetricTournamentMatchesCreated: 0,
	}

	for _, rec := range tournaments {
		tournament, err := st.TournamentByBGAID(ctx, rec.BGATournamentID)
		if err != nil {
			return nil, err
		}

		if tournament == nil {
			tournament = &store.Tournament{BGATournamentID: rec.BGATournamentID}
			applyTournamentRecord(tournament, rec)
			if err := st.CreateTournament(ctx, tournament); err != nil {
				return nil, err
			}
			counts.add(MetricTournamentsCreated)
		} else {
			applyTournamentRecord(tournament, rec)
			if err := st.UpdateTournament(ctx, tournament); err != nil {
				return nil, err
			}
			if err := st.DeleteTournamentMatches(ctx, tournament.ID); err != nil {
				return nil, err
			}
			counts.add(MetricTournamentsUpdated)
		}

		for _, m := range rec.Matches {
			match := &store.TournamentMatch{
				TournamentID: tournament.ID,
				BGATableID:   m.BGATableID,
				IsTimeout:    m.IsTimeout,
				Progress:     m.Progress,
			}
			if err := st.CreateTournamentMatch(ctx, match); err != nil {
				return nil, err
			}
			counts.add(MetricTournamentMatchesCreated)

			for _, p := range m.Players {
				player := &store.TournamentMatchPlayer{
					TournamentMatchID:    match.ID,
					PlayerName:           p.Name,
					RemainingTimeSeconds: p.RemainingTimeSeconds,
					Points:               p.Points,
				}
				if err := st.CreateTournamentMatchPlayer(ctx, player); err != nil {
					return nil, err
				}
			}
		}
	}

	return counts, nil
}

func applyTournamentRecord(t *store.Tournament, rec parser.TournamentRecord) {
	t.Name = rec.Name
	t.GameName = rec.GameName
	t.StartTime = rec.StartTime
	t.EndTime = rec.EndTime
	t.Rounds = rec.Rounds
	t.RoundLimit = rec.RoundLimit
	t.TotalMatches = rec.TotalMatches
	t.TimeoutMatches = rec.TimeoutMatches
	t.PlayerCount = rec.PlayerCount
}
