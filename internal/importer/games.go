package importer

import (
	"context"

	"github.com/askelund/bgastats/internal/parser"
	"github.com/askelund/bgastats/internal/store"
)

// importGameList upserts the authoritative catalog. Matching is by
// platform game id only; placeholder rows created from name-only
// references are not merged here (see placeholder.go).
func importGameList(ctx context.Context, st Store, games []parser.GameRecord) (Counts, error) {
	counts := Counts{
		MetricGamesCreated: 0,
		MetricGamesUpdated: 0,
	}

	for _, rec := range games {
		game, err := st.GameByBGAID(ctx, rec.BGAGameID)
		if err != nil {
			return nil, err
		}

		if game == nil {
			game = &store.Game{
				BGAGameID:   rec.BGAGameID,
				Name:        rec.Name,
				DisplayName: rec.DisplayName,
				Status:      rec.Status,
				Premium:     rec.Premium,
			}
			if err := st.CreateGame(ctx, game); err != nil {
				return nil, err
			}
			counts.add(MetricGamesCreated)
			continue
		}

		game.Name = rec.Name
		game.DisplayName = rec.DisplayName
		game.Status = rec.Status
		game.Premium = rec.Premium
		if err := st.UpdateGame(ctx, game); err != nil {
			return nil, err
		}
		counts.add(MetricGamesUpdated)
	}

	return counts, nil
}
