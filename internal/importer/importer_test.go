package importer

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/askelund/bgastats/internal/format"
	"github.com/askelund/bgastats/internal/parser"
)

const johnDoeStats = "JohnDoe\t12345\tXP\t45000\t95\t1250\t650\n" +
	"JohnDoe\t12345\tRecent games\t2\t1\t45\t3\n" +
	"JohnDoe\t12345\tChess\t1500\t42\t150\t75"

func mustParse(t *testing.T, tag format.Format, raw string) *parsedPayload {
	t.Helper()
	records, err := parsePayload(tag, raw)
	if err != nil {
		t.Fatalf("parsePayload(%s) error = %v", tag, err)
	}
	return records
}

func run(t *testing.T, ms *memStore, tag format.Format, raw string) Counts {
	t.Helper()
	counts, err := runUpserts(context.Background(), ms, tag, mustParse(t, tag, raw))
	if err != nil {
		t.Fatalf("runUpserts(%s) error = %v", tag, err)
	}
	return counts
}

func TestImportPlayerStats_Counts(t *testing.T) {
	ms := newMemStore()
	counts := run(t, ms, format.PlayerStats, johnDoeStats)

	want := Counts{
		MetricPlayersCreated:   1,
		MetricPlayersUpdated:   0,
		MetricGamesCreated:     1,
		MetricGameStatsCreated: 1,
		MetricGameStatsUpdated: 0,
	}
	for metric, n := range want {
		if counts[metric] != n {
			t.Errorf("counts[%s] = %d, want %d", metric, counts[metric], n)
		}
	}

	// Stored attributes equal the input exactly
	player, err := ms.PlayerByBGAID(context.Background(), 12345)
	if err != nil || player == nil {
		t.Fatalf("player lookup = (%v, %v)", player, err)
	}
	if player.XP != 45000 || player.Karma != 95 || player.MatchesTotal != 1250 || player.WinsTotal != 650 {
		t.Errorf("player totals = (%d, %d, %d, %d)", player.XP, player.Karma, player.MatchesTotal, player.WinsTotal)
	}
	if player.Abandoned != 2 || player.Timeout != 1 || player.RecentMatches != 45 || player.LastSeenDays != 3 {
		t.Errorf("player recents = (%d, %d, %d, %d)", player.Abandoned, player.Timeout, player.RecentMatches, player.LastSeenDays)
	}

	game, err := ms.GameByName(context.Background(), "Chess")
	if err != nil || game == nil {
		t.Fatalf("game lookup = (%v, %v)", game, err)
	}
	if !game.IsPlaceholder() {
		t.Errorf("game.BGAGameID = %d, want negative placeholder", game.BGAGameID)
	}

	stat, err := ms.PlayerGameStatFor(context.Background(), player.ID, game.ID)
	if err != nil || stat == nil {
		t.Fatalf("stat lookup = (%v, %v)", stat, err)
	}
	if stat.Elo.String != "1500" || stat.Rank.String != "42" || stat.Played != 150 || stat.Won != 75 {
		t.Errorf("stat = (%q, %q, %d, %d)", stat.Elo.String, stat.Rank.String, stat.Played, stat.Won)
	}
}

func TestImportPlayerStats_Idempotent(t *testing.T) {
	ms := newMemStore()
	run(t, ms, format.PlayerStats, johnDoeStats)
	counts := run(t, ms, format.PlayerStats, johnDoeStats)

	if counts[MetricPlayersCreated] != 0 || counts[MetricPlayersUpdated] != 1 {
		t.Errorf("second import created/updated = %d/%d, want 0/1",
			counts[MetricPlayersCreated], counts[MetricPlayersUpdated])
	}
	if counts[MetricGamesCreated] != 0 {
		t.Errorf("second import games_created = %d, want 0", counts[MetricGamesCreated])
	}
	if counts[MetricGameStatsCreated] != 0 || counts[MetricGameStatsUpdated] != 1 {
		t.Errorf("second import stat created/updated = %d/%d, want 0/1",
			counts[MetricGameStatsCreated], counts[MetricGameStatsUpdated])
	}

	if len(ms.players) != 1 || len(ms.games) != 1 || len(ms.gameStats) != 1 {
		t.Errorf("store sizes = (%d, %d, %d), want (1, 1, 1)",
			len(ms.players), len(ms.games), len(ms.gameStats))
	}
}

func TestPlaceholderAllocation_Monotonic(t *testing.T) {
	ms := newMemStore()
	raw := "JohnDoe\t12345\tXP\t45000\t95\t1250\t650\n" +
		"JohnDoe\t12345\tRecent games\t2\t1\t45\t3\n" +
		"JohnDoe\t12345\tChess\t1500\t42\t150\t75\n" +
		"JohnDoe\t12345\tHanabi\t1300\t90\t20\t8\n" +
		"JohnDoe\t12345\tCarcassonne\tN/A\t\t5\t1"
	run(t, ms, format.PlayerStats, raw)

	var ids []int64
	for _, g := range ms.games {
		if g.BGAGameID >= 0 {
			t.Errorf("game %q has non-negative id %d", g.Name, g.BGAGameID)
		}
		ids = append(ids, g.BGAGameID)
	}
	if len(ids) != 3 {
		t.Fatalf("got %d placeholder games, want 3", len(ids))
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	if ids[0] != -1 || ids[1] != -2 || ids[2] != -3 {
		t.Errorf("placeholder ids = %v, want -1, -2, -3", ids)
	}

	// A later import seeds below the committed minimum
	raw2 := "JaneDoe\t67890\tXP\t9000\t88\t300\t120\n" +
		"JaneDoe\t67890\tRecent games\t0\t0\t12\t1\n" +
		"JaneDoe\t67890\tAzul\t1400\t50\t30\t12"
	run(t, ms, format.PlayerStats, raw2)

	azul, err := ms.GameByName(context.Background(), "Azul")
	if err != nil || azul == nil {
		t.Fatalf("game lookup = (%v, %v)", azul, err)
	}
	if azul.BGAGameID != -4 {
		t.Errorf("new placeholder id = %d, want -4", azul.BGAGameID)
	}
}

func TestImportGameList_CreateThenOverwrite(t *testing.T) {
	ms := newMemStore()

	counts := run(t, ms, format.GameList, "5\tchess\tChess\tbeta\t0")
	if counts[MetricGamesCreated] != 1 || counts[MetricGamesUpdated] != 0 {
		t.Errorf("first import created/updated = %d/%d, want 1/0",
			counts[MetricGamesCreated], counts[MetricGamesUpdated])
	}

	counts = run(t, ms, format.GameList, "5\tchess\tChess II\tpublished\t1")
	if counts[MetricGamesCreated] != 0 || counts[MetricGamesUpdated] != 1 {
		t.Errorf("second import created/updated = %d/%d, want 0/1",
			counts[MetricGamesCreated], counts[MetricGamesUpdated])
	}

	game, err := ms.GameByBGAID(context.Background(), 5)
	if err != nil || game == nil {
		t.Fatalf("game lookup = (%v, %v)", game, err)
	}
	if game.DisplayName != "Chess II" || game.Status != "published" || !game.Premium {
		t.Errorf("game = %+v, want overwritten fields", game)
	}
}

func TestImportGameList_PlaceholderCoexists(t *testing.T) {
	// A placeholder created from a name-only reference is not merged
	// with a later catalog row when the names differ, even slightly.
	ms := newMemStore()
	run(t, ms, format.PlayerStats, johnDoeStats) // creates placeholder "Chess"
	run(t, ms, format.GameList, "5\tchess\tChess\tpublished\t0")

	if len(ms.games) != 2 {
		t.Fatalf("got %d games, want placeholder and catalog row to coexist", len(ms.games))
	}
}

func TestImportMoveStats_FullReplace(t *testing.T) {
	ms := newMemStore()

	five := "987;Chess;1;a;1.0;JohnDoe;600\n" +
		"987;Chess;2;b;2.0;JaneDoe;590\n" +
		"987;Chess;3;c;3.0;JohnDoe;580\n" +
		"987;Chess;4;d;4.0;JaneDoe;570\n" +
		"987;Chess;5;e;5.0;JohnDoe;560"
	counts := run(t, ms, format.MoveStats, five)
	if counts[MetricMatchesCreated] != 1 || counts[MetricMovesCreated] != 5 {
		t.Errorf("first import = %v, want 1 match, 5 moves", counts)
	}

	two := "987;Chess;1;a;1.0;JohnDoe;600\n" +
		"987;Chess;2;b;2.0;JaneDoe;590"
	counts = run(t, ms, format.MoveStats, two)
	if counts[MetricMatchesCreated] != 0 || counts[MetricMatchesUpdated] != 1 {
		t.Errorf("second import = %v, want 0 created / 1 updated", counts)
	}
	if counts[MetricMovesCreated] != 2 {
		t.Errorf("second import moves_created = %d, want 2", counts[MetricMovesCreated])
	}

	match, err := ms.MatchByBGATableID(context.Background(), 987)
	if err != nil || match == nil {
		t.Fatalf("match lookup = (%v, %v)", match, err)
	}
	moves := ms.moves[match.ID]
	if len(moves) != 2 {
		t.Fatalf("stored moves = %d, want exactly 2 after re-import", len(moves))
	}
	if moves[0].Seq != 0 || moves[1].Seq != 1 {
		t.Errorf("move seqs = (%d, %d), want document order", moves[0].Seq, moves[1].Seq)
	}
}

func TestImportTournamentStats_FullReplace(t *testing.T) {
	ms := newMemStore()

	first := "42\tWinter Cup\t\tChess\ta\tb\t3\t5\t12\t2\t8\n" +
		"42\t987\t0\t100\tJohnDoe\t500\t3\tJaneDoe\t-20\t0\n" +
		"42\t988\t1\t45\tJohnDoe\t0\t0\tBobRoss\t130\t2"
	counts := run(t, ms, format.TournamentStats, first)
	if counts[MetricTournamentsCreated] != 1 || counts[MetricTournamentMatchesCreated] != 2 {
		t.Errorf("first import = %v, want 1 tournament, 2 matches", counts)
	}

	second := "42\tWinter Cup\t\tChess\ta\tb\t3\t5\t12\t2\t8\n" +
		"42\t989\t0\t100\tJohnDoe\t400\t2\tJaneDoe\t100\t1"
	counts = run(t, ms, format.TournamentStats, second)
	if counts[MetricTournamentsUpdated] != 1 || counts[MetricTournamentMatchesCreated] != 1 {
		t.Errorf("second import = %v, want 1 updated, 1 match", counts)
	}

	if len(ms.tournamentMatches) != 1 {
		t.Fatalf("stored matches = %d, want 1 after re-import", len(ms.tournamentMatches))
	}
	for id, tm := range ms.tournamentMatches {
		if tm.BGATableID != 989 {
			t.Errorf("surviving match table = %d, want 989", tm.BGATableID)
		}
		if len(ms.tournamentPlayers[id]) != 2 {
			t.Errorf("surviving match players = %d, want 2", len(ms.tournamentPlayers[id]))
		}
	}
}

func TestRunUpserts_UnknownFormat(t *testing.T) {
	_, err := runUpserts(context.Background(), newMemStore(), format.Unknown, &parsedPayload{})
	var ute *unsupportedTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("error = %v, want unsupportedTypeError", err)
	}
}

func TestFailure_KindMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
	}{
		{
			name:     "validation",
			err:      &parser.ValidationError{Msg: "Input text is empty"},
			wantKind: KindValidation,
		},
		{
			name:     "parse",
			err:      &parser.ParseError{Line: 1, Msg: "Expected 5 columns, got 4"},
			wantKind: KindParse,
		},
		{
			name:     "unsupported type",
			err:      &unsupportedTypeError{tag: "unknown"},
			wantKind: KindUnsupportedType,
		},
		{
			name:     "anything else",
			err:      errors.New("connection refused"),
			wantKind: KindImport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := failure("id-1", tt.err)
			if res.Success {
				t.Error("failure result marked successful")
			}
			if res.ErrorType != tt.wantKind {
				t.Errorf("ErrorType = %q, want %q", res.ErrorType, tt.wantKind)
			}
			if res.Error == "" {
				t.Error("failure result has empty message")
			}
		})
	}
}

func TestFailure_ParseErrorMessage(t *testing.T) {
	res := failure("id-1", &parser.ParseError{Line: 1, Msg: "Expected 5 columns, got 4"})
	if res.Error != "Line 1: Expected 5 columns, got 4" {
		t.Errorf("Error = %q", res.Error)
	}
}
