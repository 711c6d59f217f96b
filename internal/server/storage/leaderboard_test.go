package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboard(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordGameWin(ctx, "alice", "carol"))
	require.NoError(t, store.RecordGameWin(ctx, "alice", "bob"))
	require.NoError(t, store.RecordGameWin(ctx, "alice", "carol"))

	entries, err := store.Leaderboard(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []LeaderboardEntry{
		{Rank: 1, Name: "alice", Wins: 3},
		{Rank: 2, Name: "carol", Wins: 2},
	}, entries)

	all, err := store.Leaderboard(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := store.Leaderboard(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
