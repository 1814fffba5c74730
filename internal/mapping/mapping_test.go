package mapping

import (
	"testing"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{raw: "2024-01-15T00:00:00.000Z", want: "2024-01-15"},
		{raw: "2024-01-15T23:30:00Z", want: "2024-01-15"},
		{raw: "2024-01-15", want: "2024-01-15"},
	}
	for _, tc := range cases {
		got := ParseDate(tc.raw)
		if got == nil || got.Format(time.DateOnly) != tc.want {
			t.Fatalf("ParseDate(%q) = %v, want %s", tc.raw, got, tc.want)
		}
	}
	if ParseDate("") != nil || ParseDate("yesterday") != nil {
		t.Fatalf("expected nil for empty or invalid input")
	}
}

func TestNBAGame(t *testing.T) {
	t.Parallel()

	g := NBAGame(map[string]any{
		"id":                 float64(99),
		"date":               "2024-02-01T00:00:00.000Z",
		"season":             float64(2023),
		"home_team":          map[string]any{"id": float64(1)},
		"visitor_team":       map[string]any{"id": float64(2)},
		"home_team_score":    float64(110),
		"visitor_team_score": float64(0),
	})

	if g.ID != 99 || g.League != sport.NBA {
		t.Fatalf("unexpected identity %+v", g)
	}
	if g.Season == nil || *g.Season != "2023" {
		t.Fatalf("expected season 2023, got %v", g.Season)
	}
	if *g.HomeTeamID != 1 || *g.VisitorTeamID != 2 {
		t.Fatalf("unexpected team ids")
	}
	if *g.HomeScore != 110 || g.VisitorScore == nil || *g.VisitorScore != 0 {
		t.Fatalf("unexpected scores")
	}
}

func TestMappersTolerateMissingFields(t *testing.T) {
	t.Parallel()

	g := NHLGame(map[string]any{"gamePk": float64(5), "teams": map[string]any{"home": "bad"}})
	if g.ID != 5 || g.HomeTeamID != nil || g.Date != nil || g.Season != nil {
		t.Fatalf("expected nil fields, got %+v", g)
	}
	if team := MLBTeam(nil); team.ID != 0 || team.Location != "" {
		t.Fatalf("expected zero team, got %+v", team)
	}
	if g := NBAGame(map[string]any{"home_team": nil}); g.HomeTeamID != nil {
		t.Fatalf("expected nil home team")
	}
	_ = NFLGame(nil)
}

func TestTeamLocationFallbacks(t *testing.T) {
	t.Parallel()

	mlb := MLBTeam(map[string]any{"id": float64(147), "city": "New York", "league": map[string]any{"name": "American League"}, "division": map[string]any{"name": "AL East"}})
	if mlb.Location != "New York" || mlb.LeagueName != "American League" || mlb.Division != "AL East" {
		t.Fatalf("unexpected MLB team %+v", mlb)
	}
	nhl := NHLTeam(map[string]any{"id": float64(1), "teamName": "Devils", "conference": map[string]any{"name": "Eastern"}})
	if nhl.Location != "Devils" || nhl.Conference != "Eastern" {
		t.Fatalf("unexpected NHL team %+v", nhl)
	}
	nhl = NHLTeam(map[string]any{"id": float64(1), "locationName": "New Jersey", "teamName": "Devils"})
	if nhl.Location != "New Jersey" {
		t.Fatalf("expected locationName to win, got %q", nhl.Location)
	}
}

func TestNHLStandings(t *testing.T) {
	t.Parallel()

	rows := NHLStandings([]map[string]any{{
		"teamRecords": []any{
			map[string]any{
				"team":         map[string]any{"id": float64(1)},
				"leagueRecord": map[string]any{"wins": float64(40), "losses": float64(30), "ot": float64(12)},
				"points":       float64(92),
			},
			map[string]any{"team": map[string]any{}},
		},
	}})
	if len(rows) != 1 {
		t.Fatalf("expected one standing, got %d", len(rows))
	}
	if *rows[0].Wins != 40 || *rows[0].OvertimeLosses != 12 || *rows[0].Points != 92 {
		t.Fatalf("unexpected standing %+v", rows[0])
	}
}

func TestNBAGame_RejectsFractionalNumbers(t *testing.T) {
	t.Parallel()

	g := NBAGame(map[string]any{
		"id":                 float64(12.5),
		"season":             float64(2023),
		"home_team_score":    float64(3.7),
		"visitor_team_score": float64(98),
	})
	if g.ID != 0 {
		t.Fatalf("expected fractional id to be dropped, got %d", g.ID)
	}
	if g.HomeScore != nil {
		t.Fatalf("expected fractional score to map to nil, got %d", *g.HomeScore)
	}
	if g.VisitorScore == nil || *g.VisitorScore != 98 {
		t.Fatalf("expected integral score kept, got %v", g.VisitorScore)
	}
}

func TestStatValue(t *testing.T) {
	t.Parallel()

	cases := map[string]any{
		"30":    float64(30),
		"27.4":  float64(27.4),
		".312":  ".312",
		"7":     7,
		"":      nil,
		"false": false,
	}
	for want, raw := range cases {
		if got := StatValue(raw); got != want {
			t.Fatalf("StatValue(%v) = %q, want %q", raw, got, want)
		}
	}
}

func TestExtractStatsSkipsAbsentFields(t *testing.T) {
	t.Parallel()

	groups := StatGroups(sport.NHL)
	if len(groups) != 1 {
		t.Fatalf("expected one NHL group, got %d", len(groups))
	}
	entries := ExtractStats(groups[0], map[string]any{"goals": float64(30), "points": nil})
	if len(entries) != 1 || entries[0].Name != "Goals" || entries[0].Value != "30" || entries[0].StatType != "NHL" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if entries[0].Numeric == nil || *entries[0].Numeric != 30 {
		t.Fatalf("expected numeric mirror")
	}

	mlb := StatGroups(sport.MLB)
	if len(mlb) != 3 || mlb[0].Group != "hitting" || mlb[2].StatType != "MLB_FIELDING" {
		t.Fatalf("unexpected MLB groups %+v", mlb)
	}
	mlb[0].Fields[0].Name = "mutated"
	if StatGroups(sport.MLB)[0].Fields[0].Name != "BattingAverage" {
		t.Fatalf("StatGroups must return a copy")
	}
}

func TestNBAGameStats(t *testing.T) {
	t.Parallel()

	lines := NBAGameStats([]map[string]any{
		{"game": map[string]any{"id": float64(10), "season": float64(2023)}, "pts": float64(25), "reb": float64(7)},
		{"game": nil, "pts": float64(3)},
	})
	if len(lines) != 1 || lines[0].GameID != 10 || lines[0].Season != "2023" {
		t.Fatalf("unexpected lines %+v", lines)
	}
	if lines[0].Values["PointsPerGame"] != 25 || len(lines[0].Values) != 2 {
		t.Fatalf("unexpected values %+v", lines[0].Values)
	}
}
