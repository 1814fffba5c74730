// Package nfl reads the NFL stats API.
package nfl

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/riskibarqy/athlete-hub/external/provider"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
)

const DefaultBaseURL = "https://api.nfl.com/v1"

type Client struct {
	*provider.Client
}

func NewClient(cfg provider.Config) *Client {
	cfg.League = sport.NFL
	return &Client{Client: provider.New(cfg, DefaultBaseURL)}
}

func (c *Client) GetTeams(ctx context.Context) []provider.Record {
	return provider.Records(c.GetJSONCached(ctx, "teams", "/teams", nil)["teams"])
}

func (c *Client) GetGames(ctx context.Context, teamID int64, season int) []provider.Record {
	path := fmt.Sprintf("/teams/%d/games", teamID)
	query := url.Values{}
	if season > 0 {
		query.Set("season", strconv.Itoa(season))
	}
	return provider.Records(c.GetJSONCached(ctx, provider.CacheKey(path, query), path, query)["games"])
}

// GetPlayerStats fetches one stat group, "offense" when group is empty.
func (c *Client) GetPlayerStats(ctx context.Context, playerID int64, season int, group string) provider.Record {
	if group == "" {
		group = "offense"
	}
	query := url.Values{"group": {group}}
	if season > 0 {
		query.Set("season", strconv.Itoa(season))
	}
	return provider.Object(c.GetJSON(ctx, fmt.Sprintf("/players/%d/stats", playerID), query)["stats"])
}
