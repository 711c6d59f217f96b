package server

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/tichu/internal/server/storage"
	"github.com/palemoky/tichu/internal/testutil"
)

func TestRecorder_WritesInOrderAndSurvivesErrors(t *testing.T) {
	t.Parallel()

	store := new(testutil.MockScoreStore)
	var order []int
	store.On("SaveRound", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { order = append(order, args.Get(1).(*storage.RoundRecord).Round) }).
		Return(errors.New("redis down")).Times(3)
	store.On("RecordGameWin", mock.Anything, []string{"a", "c"}).Return(nil).Once()

	rec := newRecorder(store)
	for i := 1; i <= 3; i++ {
		assert.True(t, rec.enqueue(recordJob{round: &storage.RoundRecord{GameID: "g", Round: i}}))
	}
	assert.True(t, rec.enqueue(recordJob{winners: []string{"a", "c"}}))
	rec.close()

	store.AssertExpectations(t)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestRecorder_FullQueueDropsWithoutBlocking(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	store := new(testutil.MockScoreStore)
	store.On("SaveRound", mock.Anything, mock.MatchedBy(func(r *storage.RoundRecord) bool { return r.Round == 0 })).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil).Once()
	store.On("SaveRound", mock.Anything, mock.Anything).Return(nil).Times(recordQueueSize)

	rec := newRecorder(store)
	job := func(n int) recordJob { return recordJob{round: &storage.RoundRecord{GameID: "g", Round: n}} }

	// The writer is stuck on round 0 from here on.
	require.True(t, rec.enqueue(job(0)))
	<-started

	for i := 1; i <= recordQueueSize; i++ {
		require.True(t, rec.enqueue(job(i)))
	}

	returned := make(chan bool)
	go func() { returned <- rec.enqueue(job(recordQueueSize + 1)) }()
	select {
	case ok := <-returned:
		assert.False(t, ok, "a full queue drops the job")
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}

	close(release)
	rec.close()
	store.AssertExpectations(t)
}
