// Package mapping translates provider JSON records into canonical entities.
// Every function tolerates missing or mistyped fields and never panics.
package mapping

import (
	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/team"
)

func NBATeam(data map[string]any) team.Team {
	return team.Team{
		ID:           getID(data, "id"),
		League:       sport.NBA,
		Name:         getString(data, "name"),
		FullName:     getString(data, "full_name"),
		Abbreviation: getString(data, "abbreviation"),
		Location:     getString(data, "city"),
		Conference:   getString(data, "conference"),
		Division:     getString(data, "division"),
	}
}

func NBAGame(data map[string]any) game.Game {
	return game.Game{
		ID:            getID(data, "id"),
		League:        sport.NBA,
		Season:        stringPtr(lookup(data, "season")),
		Date:          ParseDate(getString(data, "date")),
		HomeTeamID:    int64Ptr(getPath(data, "home_team", "id")),
		VisitorTeamID: int64Ptr(getPath(data, "visitor_team", "id")),
		HomeScore:     intPtr(lookup(data, "home_team_score")),
		VisitorScore:  intPtr(lookup(data, "visitor_team_score")),
	}
}

func NFLTeam(data map[string]any) team.Team {
	return team.Team{
		ID:           getID(data, "id"),
		League:       sport.NFL,
		Name:         getString(data, "name"),
		FullName:     firstNonEmpty(getString(data, "fullName"), getString(data, "full_name")),
		Abbreviation: getString(data, "abbreviation"),
		Location:     getString(data, "city"),
		Conference:   getString(data, "conference"),
		Division:     getString(data, "division"),
	}
}

// NFLGame accepts nested homeTeam/awayTeam objects or flat id fields.
func NFLGame(data map[string]any) game.Game {
	home := getPath(data, "homeTeam", "id")
	if home == nil {
		home = lookup(data, "homeTeamId")
	}
	away := getPath(data, "awayTeam", "id")
	if away == nil {
		away = lookup(data, "awayTeamId")
	}
	return game.Game{
		ID:            getID(data, "id", "gameId"),
		League:        sport.NFL,
		Season:        stringPtr(lookup(data, "season")),
		Date:          ParseDate(firstNonEmpty(getString(data, "gameDate"), getString(data, "date"))),
		HomeTeamID:    int64Ptr(home),
		VisitorTeamID: int64Ptr(away),
		HomeScore:     intPtr(lookup(data, "homeScore")),
		VisitorScore:  intPtr(lookup(data, "awayScore")),
	}
}

func MLBTeam(data map[string]any) team.Team {
	return team.Team{
		ID:           getID(data, "id"),
		League:       sport.MLB,
		Name:         getString(data, "name"),
		FullName:     getString(data, "name"),
		Abbreviation: getString(data, "abbreviation"),
		Location:     firstNonEmpty(getString(data, "locationName"), getString(data, "city")),
		LeagueName:   getString(getMap(data, "league"), "name"),
		Division:     getString(getMap(data, "division"), "name"),
	}
}

// MLBGame maps a statsapi schedule entry; MLB and NHL share the schedule shape.
func MLBGame(data map[string]any) game.Game {
	g := scheduleGame(data)
	g.League = sport.MLB
	return g
}

func NHLTeam(data map[string]any) team.Team {
	return team.Team{
		ID:           getID(data, "id"),
		League:       sport.NHL,
		Name:         getString(data, "name"),
		FullName:     getString(data, "name"),
		Abbreviation: getString(data, "abbreviation"),
		Location:     firstNonEmpty(getString(data, "locationName"), getString(data, "teamName")),
		Conference:   getString(getMap(data, "conference"), "name"),
		Division:     getString(getMap(data, "division"), "name"),
	}
}

func NHLGame(data map[string]any) game.Game {
	g := scheduleGame(data)
	g.League = sport.NHL
	return g
}

func scheduleGame(data map[string]any) game.Game {
	return game.Game{
		ID:            getID(data, "gamePk"),
		Season:        stringPtr(lookup(data, "season")),
		Date:          ParseDate(getString(data, "gameDate")),
		HomeTeamID:    int64Ptr(getPath(data, "teams", "home", "team", "id")),
		VisitorTeamID: int64Ptr(getPath(data, "teams", "away", "team", "id")),
		HomeScore:     intPtr(getPath(data, "teams", "home", "score")),
		VisitorScore:  intPtr(getPath(data, "teams", "away", "score")),
	}
}

// Standing is one team row of the NHL standings feed.
type Standing struct {
	TeamID         int64
	Wins           *int
	Losses         *int
	OvertimeLosses *int
	Points         *int
}

// NHLStandings flattens records[].teamRecords[]. Rows without a team id are dropped.
func NHLStandings(records []map[string]any) []Standing {
	out := make([]Standing, 0, len(records)*8)
	for _, record := range records {
		rows, _ := lookup(record, "teamRecords").([]any)
		for _, raw := range rows {
			row, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			teamID := getID(getMap(row, "team"), "id")
			if teamID <= 0 {
				continue
			}
			leagueRecord := getMap(row, "leagueRecord")
			out = append(out, Standing{
				TeamID:         teamID,
				Wins:           intPtr(lookup(leagueRecord, "wins")),
				Losses:         intPtr(lookup(leagueRecord, "losses")),
				OvertimeLosses: intPtr(lookup(leagueRecord, "ot")),
				Points:         intPtr(lookup(row, "points")),
			})
		}
	}
	return out
}

// Apply copies the standings onto t, leaving every other field as is.
func (s Standing) Apply(t team.Team) team.Team {
	t.Wins = s.Wins
	t.Losses = s.Losses
	t.OvertimeLosses = s.OvertimeLosses
	t.Points = s.Points
	return t
}

func lookup(src map[string]any, key string) any {
	if src == nil {
		return nil
	}
	return src[key]
}
