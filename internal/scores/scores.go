// Package scores keeps per-player score history.
package scores

import (
	"context"
	"sort"
	"time"
)

// Entry is one finished session.
type Entry struct {
	Player   string    `json:"player"`
	Score    int       `json:"score"`
	PlayedAt time.Time `json:"date"`
}

// Store persists score history scoped by player identity. History is
// append-only apart from Clear.
type Store interface {
	// Append records a finished session.
	Append(ctx context.Context, e Entry) error
	// History returns the player's entries sorted by descending score.
	History(ctx context.Context, player string) ([]Entry, error)
	// Clear removes the player's entries.
	Clear(ctx context.Context, player string) error
}

// SortByScore orders entries by descending score. Equal scores keep their
// recording order.
func SortByScore(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}

// Rank returns the 1-based position of the first entry with the given score
// in a sorted history, or 0 if no entry has it.
func Rank(history []Entry, score int) int {
	for i, e := range history {
		if e.Score == score {
			return i + 1
		}
	}
	return 0
}

// Top returns at most n leading entries.
func Top(history []Entry, n int) []Entry {
	if len(history) > n {
		return history[:n]
	}
	return history
}
