//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/tichu/internal/server/storage"
)

// MockScoreStore 存储 mock
type MockScoreStore struct {
	mock.Mock
}

func (m *MockScoreStore) SaveRound(ctx context.Context, rec *storage.RoundRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockScoreStore) RecordGameWin(ctx context.Context, winners ...string) error {
	args := m.Called(ctx, winners)
	return args.Error(0)
}

func (m *MockScoreStore) Leaderboard(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.LeaderboardEntry), args.Error(1)
}

func (m *MockScoreStore) LoadRounds(ctx context.Context, gameID string) ([]storage.RoundRecord, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.RoundRecord), args.Error(1)
}
