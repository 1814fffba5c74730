package game

import (
	"fmt"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/platform/validation"
)

// Game is one scheduled or played game. Date is a calendar date in UTC with no
// time component; Season and scores stay nil until the provider reports them.
type Game struct {
	ID            int64      `validate:"gt=0"`
	League        sport.Code `validate:"required"`
	Season        *string
	Date          *time.Time
	HomeTeamID    *int64 `validate:"omitnil,gt=0"`
	VisitorTeamID *int64 `validate:"omitnil,gt=0"`
	HomeScore     *int   `validate:"omitnil,gte=0"`
	VisitorScore  *int   `validate:"omitnil,gte=0"`
	UpdatedAt     time.Time
}

type Key struct {
	League sport.Code
	ID     int64
}

func (g Game) Key() Key {
	return Key{League: g.League, ID: g.ID}
}

// Validate enforces the persistence invariants, notably non-negative scores.
func (g Game) Validate() error {
	if !g.League.Valid() {
		return fmt.Errorf("game %d: invalid league %q", g.ID, g.League)
	}
	if err := validation.Struct(g); err != nil {
		return fmt.Errorf("game %d: %w", g.ID, err)
	}
	return nil
}

// Involves reports whether teamID plays in the game.
func (g Game) Involves(teamID int64) bool {
	return (g.HomeTeamID != nil && *g.HomeTeamID == teamID) ||
		(g.VisitorTeamID != nil && *g.VisitorTeamID == teamID)
}
