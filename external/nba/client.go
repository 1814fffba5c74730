// Package nba reads the balldontlie basketball API.
package nba

import (
	"context"
	"net/url"
	"strconv"

	"github.com/riskibarqy/athlete-hub/external/provider"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
)

const DefaultBaseURL = "https://www.balldontlie.io/api/v1"

type Client struct {
	*provider.Client
}

func NewClient(cfg provider.Config) *Client {
	cfg.League = sport.NBA
	return &Client{Client: provider.New(cfg, DefaultBaseURL)}
}

func (c *Client) GetTeams(ctx context.Context) []provider.Record {
	return provider.Records(c.GetJSONCached(ctx, "teams", "/teams", nil)["data"])
}

func (c *Client) GetGames(ctx context.Context, teamID int64, season int) []provider.Record {
	query := url.Values{"team_ids[]": {strconv.FormatInt(teamID, 10)}}
	if season > 0 {
		query.Set("seasons[]", strconv.Itoa(season))
	}
	key := provider.CacheKey("/games", query)
	return provider.Records(c.GetJSONCached(ctx, key, "/games", query)["data"])
}

// GetPlayerStats returns the season averages row. NBA has no stat groups, so
// group is ignored.
func (c *Client) GetPlayerStats(ctx context.Context, playerID int64, season int, _ string) provider.Record {
	query := url.Values{"player_ids[]": {strconv.FormatInt(playerID, 10)}}
	if season > 0 {
		query.Set("season", strconv.Itoa(season))
	}
	return provider.First(c.GetJSON(ctx, "/season_averages", query)["data"])
}

// GetPlayerGameStats returns per-game box score rows.
func (c *Client) GetPlayerGameStats(ctx context.Context, playerID int64, season int) []provider.Record {
	query := url.Values{"player_ids[]": {strconv.FormatInt(playerID, 10)}}
	if season > 0 {
		query.Set("seasons[]", strconv.Itoa(season))
	}
	return provider.Records(c.GetJSON(ctx, "/stats", query)["data"])
}
