// Package mlb reads the MLB statsapi.
package mlb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/riskibarqy/athlete-hub/external/provider"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
)

const (
	DefaultBaseURL = "https://statsapi.mlb.com/api/v1"

	// sportID selects Major League Baseball on statsapi.
	sportID = "1"
)

type Client struct {
	*provider.Client
}

func NewClient(cfg provider.Config) *Client {
	cfg.League = sport.MLB
	return &Client{Client: provider.New(cfg, DefaultBaseURL)}
}

func (c *Client) GetTeams(ctx context.Context) []provider.Record {
	query := url.Values{"sportId": {sportID}}
	return provider.Records(c.GetJSONCached(ctx, "teams", "/teams", query)["teams"])
}

func (c *Client) GetGames(ctx context.Context, teamID int64, season int) []provider.Record {
	query := url.Values{"sportId": {sportID}, "teamId": {strconv.FormatInt(teamID, 10)}}
	if season > 0 {
		query.Set("season", strconv.Itoa(season))
	}
	return provider.ScheduleGames(c.GetJSONCached(ctx, provider.CacheKey("/schedule", query), "/schedule", query))
}

// GetPlayerStats fetches season stats for one group, "hitting" when group is empty.
func (c *Client) GetPlayerStats(ctx context.Context, playerID int64, season int, group string) provider.Record {
	if group == "" {
		group = "hitting"
	}
	query := url.Values{"stats": {"season"}, "group": {group}}
	if season > 0 {
		query.Set("season", strconv.Itoa(season))
	}
	return provider.SplitStat(c.GetJSON(ctx, fmt.Sprintf("/people/%d/stats", playerID), query))
}
