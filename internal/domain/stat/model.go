package stat

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/platform/validation"
)

// AthleteStat is one named metric for one athlete, optionally scoped to a
// season. (AthleteID, Name, Season) identifies at most one row.
type AthleteStat struct {
	ID        string `validate:"required"`
	AthleteID string `validate:"required"`
	Name      string `validate:"required,max=100"`
	Value     string `validate:"max=100"`
	Season    *string
	StatType  string `validate:"max=50"`
	UpdatedAt time.Time
}

// Key is the lookup key sync logic uses before choosing insert or update.
type Key struct {
	AthleteID string
	Name      string
	Season    *string
}

func (s AthleteStat) Key() Key {
	return Key{AthleteID: s.AthleteID, Name: s.Name, Season: s.Season}
}

// Matches compares keys treating two nil seasons as equal.
func (k Key) Matches(other Key) bool {
	if k.AthleteID != other.AthleteID || k.Name != other.Name {
		return false
	}
	return SeasonString(k.Season) == SeasonString(other.Season) && (k.Season == nil) == (other.Season == nil)
}

func (s AthleteStat) Validate() error {
	if err := validation.Struct(s); err != nil {
		return fmt.Errorf("athlete stat %s/%s: %w", s.AthleteID, s.Name, err)
	}
	return nil
}

// SeasonStat is the numeric per-season variant, unique on (AthleteID, Season, Name).
type SeasonStat struct {
	AthleteID string `validate:"required"`
	TeamID    *int64
	Season    string `validate:"required"`
	Name      string `validate:"required,max=100"`
	Value     float64
	UpdatedAt time.Time
}

func (s SeasonStat) Validate() error {
	if err := validation.Struct(s); err != nil {
		return fmt.Errorf("season stat %s/%s/%s: %w", s.AthleteID, s.Season, s.Name, err)
	}
	return nil
}

// GameStat is the numeric per-game variant, unique on (AthleteID, GameID, Name).
type GameStat struct {
	AthleteID string `validate:"required"`
	GameID    int64  `validate:"gt=0"`
	Name      string `validate:"required,max=100"`
	Value     float64
	UpdatedAt time.Time
}

func (s GameStat) Validate() error {
	if err := validation.Struct(s); err != nil {
		return fmt.Errorf("game stat %s/%d/%s: %w", s.AthleteID, s.GameID, s.Name, err)
	}
	return nil
}

// Season returns a pointer to a trimmed season label, or nil when empty.
func Season(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func SeasonString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
