package athlete

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
)

// Profile is a league-agnostic athlete identity. ExternalIDs holds at most one
// provider player id per league.
type Profile struct {
	ID           string
	FirstName    string
	LastName     string
	PrimarySport *sport.Code
	CurrentTeam  string
	ExternalIDs  map[sport.Code]int64
}

// ExternalID returns the provider id for league when one is configured.
func (p Profile) ExternalID(league sport.Code) (int64, bool) {
	id, ok := p.ExternalIDs[league]
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func (p Profile) Sport() (sport.Code, bool) {
	if p.PrimarySport == nil || !p.PrimarySport.Valid() {
		return "", false
	}
	return *p.PrimarySport, true
}

func (p Profile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("athlete id is required")
	}
	if p.PrimarySport != nil && !p.PrimarySport.Valid() {
		return fmt.Errorf("athlete %s: invalid primary sport %q", p.ID, *p.PrimarySport)
	}
	for league, id := range p.ExternalIDs {
		if !league.Valid() {
			return fmt.Errorf("athlete %s: external id for unknown league %q", p.ID, league)
		}
		if id <= 0 {
			return fmt.Errorf("athlete %s: external id for %s must be > 0", p.ID, league)
		}
	}
	return nil
}
