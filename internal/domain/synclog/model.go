package synclog

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	JobNightlySyncGames        = "nightly_sync_games"
	JobWeeklySyncPlayerStats   = "weekly_sync_player_stats"
	JobHistoricalBackfillStats = "historical_backfill_stats"
)

// maxMessageLength bounds stored messages; provider errors can embed long bodies.
const maxMessageLength = 2000

// Entry is one job execution record. Entries are append-only.
type Entry struct {
	ID        int64
	JobName   string
	Success   bool
	Message   string
	RunID     string
	CreatedAt time.Time
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.JobName) == "" {
		return fmt.Errorf("sync log job name is required")
	}
	return nil
}

// TruncateMessage clips message to the stored column width without splitting
// a multi-byte character. Invalid UTF-8 is replaced.
func TruncateMessage(message string) string {
	message = strings.ToValidUTF8(strings.TrimSpace(message), "\uFFFD")
	if len(message) <= maxMessageLength {
		return message
	}
	cut := maxMessageLength - 3
	for cut > 0 && !utf8.RuneStart(message[cut]) {
		cut--
	}
	return message[:cut] + "..."
}

type ListFilter struct {
	JobName string
	Limit   int
}

type Repository interface {
	Append(ctx context.Context, e Entry) (Entry, error)
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
}
