package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	League         string        `db:"league"`
	ID             int64         `db:"id"`
	Name           string        `db:"name"`
	FullName       string        `db:"full_name"`
	Abbreviation   string        `db:"abbreviation"`
	Location       string        `db:"location"`
	Conference     string        `db:"conference"`
	Division       string        `db:"division"`
	LeagueName     string        `db:"league_name"`
	Wins           sql.NullInt64 `db:"wins"`
	Losses         sql.NullInt64 `db:"losses"`
	OvertimeLosses sql.NullInt64 `db:"overtime_losses"`
	Points         sql.NullInt64 `db:"points"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

type gameTableModel struct {
	League        string         `db:"league"`
	ID            int64          `db:"id"`
	Season        sql.NullString `db:"season"`
	GameDate      sql.NullTime   `db:"game_date"`
	HomeTeamID    sql.NullInt64  `db:"home_team_id"`
	VisitorTeamID sql.NullInt64  `db:"visitor_team_id"`
	HomeScore     sql.NullInt64  `db:"home_score"`
	VisitorScore  sql.NullInt64  `db:"visitor_score"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type athleteTableModel struct {
	ID           string         `db:"id"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	PrimarySport sql.NullString `db:"primary_sport"`
	CurrentTeam  string         `db:"current_team"`
	ExternalIDs  string         `db:"external_ids"`
}

type athleteStatTableModel struct {
	ID        string         `db:"id"`
	AthleteID string         `db:"athlete_id"`
	Name      string         `db:"name"`
	Value     string         `db:"value"`
	Season    sql.NullString `db:"season"`
	StatType  string         `db:"stat_type"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type seasonStatTableModel struct {
	AthleteID string        `db:"athlete_id"`
	TeamID    sql.NullInt64 `db:"team_id"`
	Season    string        `db:"season"`
	Name      string        `db:"name"`
	Value     float64       `db:"value"`
	UpdatedAt time.Time     `db:"updated_at"`
}

type gameStatTableModel struct {
	AthleteID string    `db:"athlete_id"`
	GameID    int64     `db:"game_id"`
	Name      string    `db:"name"`
	Value     float64   `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

type syncLogTableModel struct {
	ID        int64     `db:"id"`
	JobName   string    `db:"job_name"`
	Success   bool      `db:"success"`
	Message   string    `db:"message"`
	RunID     string    `db:"run_id"`
	CreatedAt time.Time `db:"created_at"`
}
