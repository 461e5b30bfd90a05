package importer

import (
	"context"

	"github.com/askelund/bgastats/internal/parser"
	"github.com/askelund/bgastats/internal/store"
)

// importMoveStats upserts a single match timeline. Re-importing a known
// table replaces its moves wholesale: old moves are deleted first, then
// every move in the new document is inserted in document order. A move
// present before but absent now is silently gone.
func importMoveStats(ctx context.Context, st Store, rec *parser.MatchRecord) (Counts, error) {
	counts := Counts{
		MetricMatchesCreated: 0,
		MetricMatchesUpdated: 0,
		MetricMovesCreated:   0,
	}

	match, err := st.MatchByBGATableID(ctx, rec.BGATableID)
	if err != nil {
		return nil, err
	}

	if match == nil {
		match = &store.Match{
			BGATableID: rec.BGATableID,
			GameName:   rec.GameName,
		}
		if err := st.CreateMatch(ctx, match); err != nil {
			return nil, err
		}
		counts.add(MetricMatchesCreated)
	} else {
		match.GameName = rec.GameName
		if err := st.UpdateMatch(ctx, match); err != nil {
			return nil, err
		}
		if err := st.DeleteMatchMoves(ctx, match.ID); err != nil {
			return nil, err
		}
		counts.add(MetricMatchesUpdated)
	}

	for i, mv := range rec.Moves {
		move := &store.MatchMove{
			MatchID:       match.ID,
			Seq:           i,
			MoveNo:        mv.MoveNo,
			PlayerName:    mv.PlayerName,
			DatetimeLocal: mv.DatetimeLocal,
			DatetimeExcel: mv.DatetimeExcel,
			RemainingTime: optionalText(mv.RemainingTime),
		}
		if err := st.CreateMatchMove(ctx, move); err != nil {
			return nil, err
		}
		counts.add(MetricMovesCreated)
	}

	return counts, nil
}
