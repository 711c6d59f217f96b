package server

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/palemoky/tichu/internal/server/storage"
)

const (
	recordQueueSize = 64
	storeTimeout    = 5 * time.Second
	leaderboardSize = 10
)

// ScoreStore persists finished rounds and game wins and reads them back.
type ScoreStore interface {
	SaveRound(ctx context.Context, rec *storage.RoundRecord) error
	RecordGameWin(ctx context.Context, winners ...string) error
	Leaderboard(ctx context.Context, limit int) ([]storage.LeaderboardEntry, error)
	LoadRounds(ctx context.Context, gameID string) ([]storage.RoundRecord, error)
}

type recordJob struct {
	round   *storage.RoundRecord
	winners []string
}

// recorder writes to the store on its own goroutine so that Redis latency
// never extends the table's critical section. Jobs are written in order.
type recorder struct {
	store ScoreStore
	jobs  chan recordJob
	done  chan struct{}
}

func newRecorder(store ScoreStore) *recorder {
	r := &recorder{
		store: store,
		jobs:  make(chan recordJob, recordQueueSize),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *recorder) run() {
	defer close(r.done)
	for job := range r.jobs {
		r.write(job)
	}
}

func (r *recorder) write(job recordJob) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if job.round != nil {
		if err := r.store.SaveRound(ctx, job.round); err != nil {
			log.Error().Err(err).Str("game", job.round.GameID).Int("round", job.round.Round).Msg("failed to save round")
		}
	}
	if len(job.winners) > 0 {
		if err := r.store.RecordGameWin(ctx, job.winners...); err != nil {
			log.Error().Err(err).Strs("winners", job.winners).Msg("failed to record game win")
		}
	}
}

// enqueue never blocks: the caller holds the table lock. When the store falls
// a full queue behind, the job is dropped and false returned.
func (r *recorder) enqueue(job recordJob) bool {
	select {
	case r.jobs <- job:
		return true
	default:
		ev := log.Warn().Strs("winners", job.winners)
		if job.round != nil {
			ev = ev.Str("game", job.round.GameID).Int("round", job.round.Round)
		}
		ev.Msg("record queue full, dropping")
		return false
	}
}

// close drains the queue. No enqueue may follow.
func (r *recorder) close() {
	close(r.jobs)
	<-r.done
}
