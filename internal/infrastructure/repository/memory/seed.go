package memory

import (
	"context"

	"github.com/riskibarqy/athlete-hub/internal/domain/athlete"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
)

// SeedAthletes stores a small roster so the dev server has something to sync.
func SeedAthletes(ctx context.Context, s *Store) error {
	nba, nfl, mlb, nhl := sport.NBA, sport.NFL, sport.MLB, sport.NHL
	roster := []athlete.Profile{
		{ID: "athlete-lebron-james", FirstName: "LeBron", LastName: "James", PrimarySport: &nba, CurrentTeam: "Lakers", ExternalIDs: map[sport.Code]int64{sport.NBA: 237}},
		{ID: "athlete-patrick-mahomes", FirstName: "Patrick", LastName: "Mahomes", PrimarySport: &nfl, CurrentTeam: "Chiefs", ExternalIDs: map[sport.Code]int64{sport.NFL: 3139477}},
		{ID: "athlete-shohei-ohtani", FirstName: "Shohei", LastName: "Ohtani", PrimarySport: &mlb, CurrentTeam: "Dodgers", ExternalIDs: map[sport.Code]int64{sport.MLB: 660271}},
		{ID: "athlete-connor-mcdavid", FirstName: "Connor", LastName: "McDavid", PrimarySport: &nhl, CurrentTeam: "Oilers", ExternalIDs: map[sport.Code]int64{sport.NHL: 8478402}},
	}
	repo := s.Repositories().Athletes
	for _, p := range roster {
		if err := repo.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
