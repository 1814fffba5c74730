// Package nhl reads the NHL statsapi.
package nhl

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/riskibarqy/athlete-hub/external/provider"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
)

const DefaultBaseURL = "https://statsapi.web.nhl.com/api/v1"

type Client struct {
	*provider.Client
}

func NewClient(cfg provider.Config) *Client {
	cfg.League = sport.NHL
	return &Client{Client: provider.New(cfg, DefaultBaseURL)}
}

// Season formats a starting year the way the NHL API expects, 2023 -> "20232024".
func Season(year int) string {
	return fmt.Sprintf("%d%d", year, year+1)
}

func (c *Client) GetTeams(ctx context.Context) []provider.Record {
	return provider.Records(c.GetJSONCached(ctx, "teams", "/teams", nil)["teams"])
}

func (c *Client) GetGames(ctx context.Context, teamID int64, season int) []provider.Record {
	query := url.Values{"teamId": {strconv.FormatInt(teamID, 10)}}
	if season > 0 {
		query.Set("season", Season(season))
	}
	return provider.ScheduleGames(c.GetJSONCached(ctx, provider.CacheKey("/schedule", query), "/schedule", query))
}

// GetPlayerStats returns the single-season split. NHL has no stat groups.
func (c *Client) GetPlayerStats(ctx context.Context, playerID int64, season int, _ string) provider.Record {
	query := url.Values{"stats": {"statsSingleSeason"}}
	if season > 0 {
		query.Set("season", Season(season))
	}
	return provider.SplitStat(c.GetJSON(ctx, fmt.Sprintf("/people/%d/stats", playerID), query))
}

func (c *Client) GetStandings(ctx context.Context) []provider.Record {
	return provider.Records(c.GetJSONCached(ctx, "standings", "/standings", nil)["records"])
}
