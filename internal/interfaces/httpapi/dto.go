package httpapi

import (
	"time"

	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/stat"
	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
	"github.com/riskibarqy/athlete-hub/internal/domain/team"
	"github.com/riskibarqy/athlete-hub/internal/usecase"
)

type syncLogDTO struct {
	ID        int64  `json:"id"`
	JobName   string `json:"job_name"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RunID     string `json:"run_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

type teamDTO struct {
	ID             int64  `json:"id"`
	League         string `json:"league"`
	Name           string `json:"name"`
	FullName       string `json:"full_name,omitempty"`
	Abbreviation   string `json:"abbreviation,omitempty"`
	Location       string `json:"location,omitempty"`
	Conference     string `json:"conference,omitempty"`
	Division       string `json:"division,omitempty"`
	LeagueName     string `json:"league_name,omitempty"`
	Wins           *int   `json:"wins,omitempty"`
	Losses         *int   `json:"losses,omitempty"`
	OvertimeLosses *int   `json:"overtime_losses,omitempty"`
	Points         *int   `json:"points,omitempty"`
}

type gameDTO struct {
	ID            int64   `json:"id"`
	League        string  `json:"league"`
	Season        *string `json:"season,omitempty"`
	Date          string  `json:"date,omitempty"`
	HomeTeamID    *int64  `json:"home_team_id,omitempty"`
	VisitorTeamID *int64  `json:"visitor_team_id,omitempty"`
	HomeScore     *int    `json:"home_score,omitempty"`
	VisitorScore  *int    `json:"visitor_score,omitempty"`
}

type athleteStatDTO struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Season   *string `json:"season,omitempty"`
	StatType string  `json:"stat_type,omitempty"`
}

type numericStatDTO struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Season string  `json:"season,omitempty"`
	GameID int64   `json:"game_id,omitempty"`
}

type athleteStatsDTO struct {
	AthleteID   string           `json:"athlete_id"`
	Name        string           `json:"name"`
	Sport       string           `json:"sport,omitempty"`
	CurrentTeam string           `json:"current_team,omitempty"`
	Stats       []athleteStatDTO `json:"stats"`
	SeasonStats []numericStatDTO `json:"season_stats"`
	GameStats   []numericStatDTO `json:"game_stats"`
}

func syncLogToDTO(v synclog.Entry) syncLogDTO {
	return syncLogDTO{
		ID:        v.ID,
		JobName:   v.JobName,
		Success:   v.Success,
		Message:   v.Message,
		RunID:     v.RunID,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:             v.ID,
		League:         string(v.League),
		Name:           v.Name,
		FullName:       v.FullName,
		Abbreviation:   v.Abbreviation,
		Location:       v.Location,
		Conference:     v.Conference,
		Division:       v.Division,
		LeagueName:     v.LeagueName,
		Wins:           v.Wins,
		Losses:         v.Losses,
		OvertimeLosses: v.OvertimeLosses,
		Points:         v.Points,
	}
}

func gameToDTO(v game.Game) gameDTO {
	out := gameDTO{
		ID:            v.ID,
		League:        string(v.League),
		Season:        v.Season,
		HomeTeamID:    v.HomeTeamID,
		VisitorTeamID: v.VisitorTeamID,
		HomeScore:     v.HomeScore,
		VisitorScore:  v.VisitorScore,
	}
	if v.Date != nil {
		out.Date = v.Date.Format(time.DateOnly)
	}
	return out
}

func athleteStatsToDTO(v usecase.AthleteStats) athleteStatsDTO {
	out := athleteStatsDTO{
		AthleteID:   v.Athlete.ID,
		Name:        v.Athlete.DisplayName(),
		CurrentTeam: v.Athlete.CurrentTeam,
		Stats:       make([]athleteStatDTO, 0, len(v.Stats)),
		SeasonStats: make([]numericStatDTO, 0, len(v.SeasonStats)),
		GameStats:   make([]numericStatDTO, 0, len(v.GameStats)),
	}
	if code, ok := v.Athlete.Sport(); ok {
		out.Sport = string(code)
	}
	for _, item := range v.Stats {
		out.Stats = append(out.Stats, statToDTO(item))
	}
	for _, item := range v.SeasonStats {
		out.SeasonStats = append(out.SeasonStats, numericStatDTO{Name: item.Name, Value: item.Value, Season: item.Season})
	}
	for _, item := range v.GameStats {
		out.GameStats = append(out.GameStats, numericStatDTO{Name: item.Name, Value: item.Value, GameID: item.GameID})
	}
	return out
}

func statToDTO(v stat.AthleteStat) athleteStatDTO {
	return athleteStatDTO{
		Name:     v.Name,
		Value:    v.Value,
		Season:   v.Season,
		StatType: v.StatType,
	}
}
