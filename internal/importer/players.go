package importer

import (
	"context"

	"github.com/askelund/bgastats/internal/parser"
	"github.com/askelund/bgastats/internal/store"
	"github.com/jackc/pgx/v5/pgtype"
)

// importPlayerStats upserts parsed player records and their per-game
// stats. Games referenced by name resolve through the placeholder
// allocator; a stat row is only ever written after both its player and
// game exist in the same transaction.
func importPlayerStats(ctx context.Context, st Store, players []parser.PlayerRecord) (Counts, error) {
	counts := Counts{
		MetricPlayersCreated:   0,
		MetricPlayersUpdated:   0,
		MetricGamesCreated:     0,
		MetricGameStatsCreated: 0,
		MetricGameStatsUpdated: 0,
	}
	alloc := &placeholderAllocator{}

	for _, rec := range players {
		player, err := upsertPlayer(ctx, st, rec, counts)
		if err != nil {
			return nil, err
		}

		for _, gs := range rec.GameStats {
			game, created, err := resolveGameByName(ctx, st, alloc, gs.GameName)
			if err != nil {
				return nil, err
			}
			if created {
				counts.add(MetricGamesCreated)
			}

			if err := upsertGameStat(ctx, st, player.ID, game.ID, gs, counts); err != nil {
				return nil, err
			}
		}
	}

	return counts, nil
}

func upsertPlayer(ctx context.Context, st Store, rec parser.PlayerRecord, counts Counts) (*store.Player, error) {
	player, err := st.PlayerByBGAID(ctx, rec.BGAPlayerID)
	if err != nil {
		return nil, err
	}

	if player == nil {
		player = &store.Player{BGAPlayerID: rec.BGAPlayerID}
		applyPlayerRecord(player, rec)
		if err := st.CreatePlayer(ctx, player); err != nil {
			return nil, err
		}
		counts.add(MetricPlayersCreated)
		return player, nil
	}

	applyPlayerRecord(player, rec)
	if err := st.UpdatePlayer(ctx, player); err != nil {
		return nil, err
	}
	counts.add(MetricPlayersUpdated)
	return player, nil
}

func applyPlayerRecord(p *store.Player, rec parser.PlayerRecord) {
	p.Name = rec.Name
	p.XP = rec.XP
	p.Karma = rec.Karma
	p.MatchesTotal = rec.MatchesTotal
	p.WinsTotal = rec.WinsTotal
	p.Abandoned = rec.Abandoned
	p.Timeout = rec.Timeout
	p.RecentMatches = rec.RecentMatches
	p.LastSeenDays = rec.LastSeenDays
}

func upsertGameStat(ctx context.Context, st Store, playerID, gameID int64, rec parser.PlayerGameStatRecord, counts Counts) error {
	stat, err := st.PlayerGameStatFor(ctx, playerID, gameID)
	if err != nil {
		return err
	}

	elo := optionalText(rec.Elo)
	rank := optionalText(rec.Rank)

	if stat == nil {
		stat = &store.PlayerGameStat{
			PlayerID: playerID,
			GameID:   gameID,
			Elo:      elo,
			Rank:     rank,
			Played:   rec.Played,
			Won:      rec.Won,
		}
		if err := st.CreatePlayerGameStat(ctx, stat); err != nil {
			return err
		}
		counts.add(MetricGameStatsCreated)
		return nil
	}

	stat.Elo = elo
	stat.Rank = rank
	stat.Played = rec.Played
	stat.Won = rec.Won
	if err := st.UpdatePlayerGameStat(ctx, stat); err != nil {
		return err
	}
	counts.add(MetricGameStatsUpdated)
	return nil
}

// optionalText maps an empty export value to NULL.
func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
