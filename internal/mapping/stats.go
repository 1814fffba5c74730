package mapping

import "github.com/riskibarqy/athlete-hub/internal/domain/sport"

// StatField maps one provider field to a canonical stat name.
type StatField struct {
	Source string
	Name   string
}

// StatGroup is one provider stat grouping. Group is the query value sent to
// the provider and is empty for leagues without groupings.
type StatGroup struct {
	Group    string
	StatType string
	Fields   []StatField
}

var statGroups = map[sport.Code][]StatGroup{
	sport.NBA: {
		{StatType: "NBA", Fields: []StatField{
			{Source: "pts", Name: "PointsPerGame"},
			{Source: "reb", Name: "ReboundsPerGame"},
			{Source: "ast", Name: "AssistsPerGame"},
		}},
	},
	sport.NFL: {
		{Group: "offense", StatType: "NFL_OFFENSE", Fields: []StatField{
			{Source: "passingYards", Name: "PassingYards"},
			{Source: "rushingYards", Name: "RushingYards"},
			{Source: "receivingYards", Name: "ReceivingYards"},
		}},
		{Group: "defense", StatType: "NFL_DEFENSE", Fields: []StatField{
			{Source: "tackles", Name: "Tackles"},
			{Source: "sacks", Name: "Sacks"},
		}},
	},
	sport.MLB: {
		{Group: "hitting", StatType: "MLB_HITTING", Fields: []StatField{{Source: "avg", Name: "BattingAverage"}}},
		{Group: "pitching", StatType: "MLB_PITCHING", Fields: []StatField{{Source: "era", Name: "EarnedRunAverage"}}},
		{Group: "fielding", StatType: "MLB_FIELDING", Fields: []StatField{{Source: "fielding", Name: "FieldingPercentage"}}},
	},
	sport.NHL: {
		{StatType: "NHL", Fields: []StatField{
			{Source: "goals", Name: "Goals"},
			{Source: "assists", Name: "Assists"},
			{Source: "points", Name: "Points"},
		}},
	},
}

// StatGroups returns a copy of the groupings synced for league.
func StatGroups(league sport.Code) []StatGroup {
	groups := statGroups[league]
	out := make([]StatGroup, len(groups))
	for i, g := range groups {
		g.Fields = append([]StatField(nil), g.Fields...)
		out[i] = g
	}
	return out
}

// StatEntry is one field of a stat response that is present and mapped.
type StatEntry struct {
	Name     string
	StatType string
	Value    string
	Numeric  *float64
}

// ExtractStats returns the mapped fields present in data, in group field order.
// Absent or null fields are skipped.
func ExtractStats(group StatGroup, data map[string]any) []StatEntry {
	out := make([]StatEntry, 0, len(group.Fields))
	for _, field := range group.Fields {
		raw, ok := data[field.Source]
		if !ok || raw == nil {
			continue
		}
		entry := StatEntry{Name: field.Name, StatType: group.StatType, Value: StatValue(raw)}
		if v, ok := NumericValue(raw); ok {
			entry.Numeric = &v
		}
		out = append(out, entry)
	}
	return out
}

// GameStatLine is one player's box score line from the NBA stats feed.
type GameStatLine struct {
	GameID int64
	Season string
	Values map[string]float64
}

// NBAGameStats maps /stats rows into per-game lines keyed by canonical stat name.
func NBAGameStats(rows []map[string]any) []GameStatLine {
	fields := statGroups[sport.NBA][0].Fields
	out := make([]GameStatLine, 0, len(rows))
	for _, row := range rows {
		gameData := getMap(row, "game")
		gameID := getID(gameData, "id")
		if gameID <= 0 {
			continue
		}
		line := GameStatLine{GameID: gameID, Season: asString(lookup(gameData, "season")), Values: make(map[string]float64, len(fields))}
		for _, field := range fields {
			if v, ok := NumericValue(lookup(row, field.Source)); ok {
				line.Values[field.Name] = v
			}
		}
		out = append(out, line)
	}
	return out
}
