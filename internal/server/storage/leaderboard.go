package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:wins"

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank int    `json:"rank"`
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// RecordGameWin credits one game win to each winner.
func (rs *RedisStore) RecordGameWin(ctx context.Context, winners ...string) error {
	pipe := rs.client.TxPipeline()
	for _, name := range winners {
		pipe.ZIncrBy(ctx, leaderboardKey, 1, name)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Leaderboard returns the top limit players by wins.
func (rs *RedisStore) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	results, err := rs.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	return toEntries(results), nil
}

func toEntries(results []redis.Z) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(results))
	for i, z := range results {
		name, _ := z.Member.(string)
		entries = append(entries, LeaderboardEntry{Rank: i + 1, Name: name, Wins: int(z.Score)})
	}
	return entries
}
