package parser

import (
	"strings"
	"testing"
)

const johnDoeStats = "JohnDoe\t12345\tXP\t45000\t95\t1250\t650\n" +
	"JohnDoe\t12345\tRecent games\t2\t1\t45\t3\n" +
	"JohnDoe\t12345\tChess\t1500\t42\t150\t75"

func TestParsePlayerStats_RoundTrip(t *testing.T) {
	players, err := ParsePlayerStats(johnDoeStats)
	if err != nil {
		t.Fatalf("ParsePlayerStats() error = %v", err)
	}

	if len(players) != 1 {
		t.Fatalf("got %d players, want 1", len(players))
	}

	p := players[0]
	if p.Name != "JohnDoe" || p.BGAPlayerID != 12345 {
		t.Errorf("identity = (%q, %d), want (JohnDoe, 12345)", p.Name, p.BGAPlayerID)
	}
	if p.XP != 45000 || p.Karma != 95 || p.MatchesTotal != 1250 || p.WinsTotal != 650 {
		t.Errorf("XP row = (%d, %d, %d, %d), want (45000, 95, 1250, 650)",
			p.XP, p.Karma, p.MatchesTotal, p.WinsTotal)
	}
	if p.Abandoned != 2 || p.Timeout != 1 || p.RecentMatches != 45 || p.LastSeenDays != 3 {
		t.Errorf("Recent games row = (%d, %d, %d, %d), want (2, 1, 45, 3)",
			p.Abandoned, p.Timeout, p.RecentMatches, p.LastSeenDays)
	}

	if len(p.GameStats) != 1 {
		t.Fatalf("got %d game stats, want 1", len(p.GameStats))
	}
	gs := p.GameStats[0]
	want := PlayerGameStatRecord{GameName: "Chess", Elo: "1500", Rank: "42", Played: 150, Won: 75}
	if gs != want {
		t.Errorf("game stat = %+v, want %+v", gs, want)
	}
}

func TestParsePlayerStats_MissingRecentGamesRow(t *testing.T) {
	raw := "JohnDoe\t12345\tXP\t45000\t95\t1250\t650\n" +
		"JohnDoe\t12345\tChess\t1500\t42\t150\t75"

	_, err := ParsePlayerStats(raw)
	if err == nil {
		t.Fatal("ParsePlayerStats() expected error")
	}
	if !IsValidation(err) {
		t.Errorf("error is not a ValidationError: %v", err)
	}
	want := "Player 'JohnDoe' (ID: 12345) missing Recent games row"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestParsePlayerStats_MissingXPRow(t *testing.T) {
	raw := "JohnDoe\t12345\tRecent games\t2\t1\t45\t3"

	_, err := ParsePlayerStats(raw)
	if err == nil {
		t.Fatal("ParsePlayerStats() expected error")
	}
	want := "Player 'JohnDoe' (ID: 12345) missing XP row"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestParsePlayerStats_MultiplePlayersInterleaved(t *testing.T) {
	// Rows for the two players are deliberately interleaved; grouping is
	// by player id, output order is first appearance.
	raw := "JohnDoe\t12345\tXP\t45000\t95\t1250\t650\n" +
		"JaneDoe\t67890\tXP\t9000\t88\t300\t120\n" +
		"JohnDoe\t12345\tRecent games\t2\t1\t45\t3\n" +
		"JaneDoe\t67890\tRecent games\t0\t0\t12\t1\n" +
		"JaneDoe\t67890\tHanabi\tN/A\t\t10\t4\n" +
		"JohnDoe\t12345\tChess\t1500\t42\t150\t75"

	players, err := ParsePlayerStats(raw)
	if err != nil {
		t.Fatalf("ParsePlayerStats() error = %v", err)
	}

	if len(players) != 2 {
		t.Fatalf("got %d players, want 2", len(players))
	}
	if players[0].BGAPlayerID != 12345 || players[1].BGAPlayerID != 67890 {
		t.Errorf("order = (%d, %d), want first-appearance (12345, 67890)",
			players[0].BGAPlayerID, players[1].BGAPlayerID)
	}

	// ELO "N/A" and an absent rank pass through untouched
	gs := players[1].GameStats[0]
	if gs.Elo != "N/A" || gs.Rank != "" {
		t.Errorf("opaque stats = (%q, %q), want (N/A, empty)", gs.Elo, gs.Rank)
	}
}

func TestParsePlayerStats_RowErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantMsg string
	}{
		{
			name:    "too few columns",
			raw:     "JohnDoe\t12345\tXP\t45000",
			wantMsg: "Line 1: Expected at least 7 columns, got 4",
		},
		{
			name:    "non numeric player id",
			raw:     "JohnDoe\tabc\tXP\t45000\t95\t1250\t650",
			wantMsg: "Line 1: Player ID must be numeric, got 'abc'",
		},
		{
			name:    "bad value in XP row",
			raw:     "JohnDoe\t12345\tXP\tlots\t95\t1250\t650",
			wantMsg: "Line 1: XP row has invalid numeric value 'lots'",
		},
		{
			name: "bad played count in game row",
			raw: "JohnDoe\t12345\tXP\t45000\t95\t1250\t650\n" +
				"JohnDoe\t12345\tRecent games\t2\t1\t45\t3\n" +
				"JohnDoe\t12345\tChess\t1500\t42\tmany\t75",
			wantMsg: "Line 3: Game row has invalid numeric value 'many'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlayerStats(tt.raw)
			if err == nil {
				t.Fatal("ParsePlayerStats() expected error")
			}
			if !IsParse(err) {
				t.Errorf("error is not a ParseError: %v", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParsePlayerStats_SkipsBlankLines(t *testing.T) {
	raw := strings.ReplaceAll(johnDoeStats, "\n", "\n\n")
	players, err := ParsePlayerStats(raw)
	if err != nil {
		t.Fatalf("ParsePlayerStats() error = %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("got %d players, want 1", len(players))
	}
}
