package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	gameKeyPrefix = "game:"
	roundsSuffix  = ":rounds"

	// 对局记录过期时间
	gameExpiration = 30 * 24 * time.Hour
)

// RoundRecord is one scored round, stored as a JSON list element.
type RoundRecord struct {
	GameID   string    `json:"game_id"`
	Round    int       `json:"round"`
	Players  [4]string `json:"players"`
	Finished []int     `json:"finished"`
	Team1    int       `json:"team1"`
	Team2    int       `json:"team2"`
	Total1   int       `json:"total1"`
	Total2   int       `json:"total2"`
	At       int64     `json:"at"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Open connects to addr and checks the connection.
func Open(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewRedisStore(client), nil
}

func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

func roundsKey(gameID string) string {
	return gameKeyPrefix + gameID + roundsSuffix
}

// SaveRound appends rec to its game's round list.
func (rs *RedisStore) SaveRound(ctx context.Context, rec *RoundRecord) error {
	if rec == nil {
		return nil
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("序列化对局数据失败: %w", err)
	}

	key := roundsKey(rec.GameID)
	pipe := rs.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, gameExpiration)
	_, err = pipe.Exec(ctx)
	return err
}

// LoadRounds returns the recorded rounds of a game in play order.
func (rs *RedisStore) LoadRounds(ctx context.Context, gameID string) ([]RoundRecord, error) {
	items, err := rs.client.LRange(ctx, roundsKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	rounds := make([]RoundRecord, 0, len(items))
	for _, item := range items {
		var rec RoundRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("反序列化对局数据失败: %w", err)
		}
		rounds = append(rounds, rec)
	}
	return rounds, nil
}
