package team

import (
	"fmt"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/platform/validation"
)

// Team is one club of any league. ID is the provider's id and, together with
// League, the natural key.
type Team struct {
	ID           int64      `validate:"gt=0"`
	League       sport.Code `validate:"required"`
	Name         string
	FullName     string
	Abbreviation string
	Location     string
	Conference   string
	Division     string
	LeagueName   string

	// Standings, only populated for leagues with a standings feed.
	Wins           *int `validate:"omitnil,gte=0"`
	Losses         *int `validate:"omitnil,gte=0"`
	OvertimeLosses *int `validate:"omitnil,gte=0"`
	Points         *int `validate:"omitnil,gte=0"`

	UpdatedAt time.Time
}

// Key is the natural key of a team row.
type Key struct {
	League sport.Code
	ID     int64
}

func (t Team) Key() Key {
	return Key{League: t.League, ID: t.ID}
}

func (t Team) Validate() error {
	if !t.League.Valid() {
		return fmt.Errorf("team %d: invalid league %q", t.ID, t.League)
	}
	if err := validation.Struct(t); err != nil {
		return fmt.Errorf("team %d: %w", t.ID, err)
	}
	return nil
}
