// Package storage keeps the relay's cosmetic win tally in Redis. Game
// state itself is never persisted; only finished-game winners are
// counted, keyed by player name.
package storage

import (
	"context"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const winsKey = "thirteen:wins"

// WinStore records and serves the win tally.
type WinStore struct {
	rdb *redis.Client
}

// NewWinStore wraps a Redis client.
func NewWinStore(rdb *redis.Client) *WinStore {
	return &WinStore{rdb: rdb}
}

// RecordWin increments the named player's win count and returns the
// new total.
func (s *WinStore) RecordWin(ctx context.Context, name string) (int64, error) {
	return s.rdb.HIncrBy(ctx, winsKey, name, 1).Result()
}

// Wins returns one player's win count; zero when unknown.
func (s *WinStore) Wins(ctx context.Context, name string) (int64, error) {
	n, err := s.rdb.HGet(ctx, winsKey, name).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

// Entry is one leaderboard row.
type Entry struct {
	Name string
	Wins int64
}

// Top returns up to limit players ordered by wins, ties by name for a
// stable order.
func (s *WinStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	all, err := s.rdb.HGetAll(ctx, winsKey).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(all))
	for name, raw := range all {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Name: name, Wins: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].Name < entries[j].Name
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
