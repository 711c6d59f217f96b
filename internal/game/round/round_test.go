package round

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/tichu/internal/game/card"
	"github.com/palemoky/tichu/internal/game/rule"
)

func newDealtRound(t *testing.T) *Round {
	t.Helper()
	r := New(nil)
	r.NewGame()
	r.currentPlayer = 0
	return r
}

func single(c card.Card) *rule.Trick {
	return rule.NewTrick(c)
}

func TestShuffleAndDeal(t *testing.T) {
	t.Parallel()

	r := New(nil)
	assert.Equal(t, StateWaiting, r.State())
	r.NewGame()
	assert.Equal(t, StateDealt, r.State())

	holder := -1
	for seat := range Players {
		hand := r.TakeHand(seat)
		require.Len(t, hand, card.HandSize)
		for _, c := range hand {
			if c.Is(card.One) {
				holder = seat
			}
		}
		assert.Nil(t, r.TakeHand(seat), "hand must only be taken once")
	}
	assert.Equal(t, holder, r.CurrentPlayer())
	assert.Nil(t, r.TakeHand(7))
}

func TestNext_ThreePassesCollectTable(t *testing.T) {
	t.Parallel()

	r := newDealtRound(t)
	r.AddTrick(single(card.New(card.King, card.Red)))
	assert.Equal(t, Continue, r.Next())
	assert.Equal(t, 1, r.CurrentPlayer())

	r.AddTrick(single(card.Special(card.Dragon)))
	assert.Equal(t, Continue, r.Next())
	assert.Equal(t, 2, r.CurrentPlayer())

	for range 2 {
		r.Pass()
		assert.Equal(t, Continue, r.Next())
	}
	r.Pass()
	assert.Equal(t, TrickWin, r.Next())

	assert.Equal(t, 1, r.CurrentPlayer())
	assert.Equal(t, 35, r.PlayerPoints(1))
	assert.Equal(t, 1, r.LastTaker())
	assert.Nil(t, r.CurrentTrick())
	assert.Equal(t, 0, r.Passes())
}

func TestAddTrick_ResetsPasses(t *testing.T) {
	t.Parallel()

	r := newDealtRound(t)
	r.AddTrick(single(card.New(card.Two, card.Red)))
	r.Next()
	r.Pass()
	r.Next()
	assert.Equal(t, 1, r.Passes())

	top := single(card.New(card.Three, card.Red))
	r.AddTrick(top)
	assert.Equal(t, 0, r.Passes())
	assert.Same(t, top, r.CurrentTrick())
	assert.Equal(t, StateInPlay, r.State())
}

func TestNext_DogPassesLeadToPartner(t *testing.T) {
	t.Parallel()

	r := newDealtRound(t)
	r.currentPlayer = 1
	r.AddTrick(single(card.Special(card.Dog)))
	assert.Equal(t, Continue, r.Next())
	assert.Equal(t, 3, r.CurrentPlayer())
	assert.Nil(t, r.CurrentTrick(), "the dog clears the table")

	// The jump only follows the dog itself, not a later pass.
	r.AddTrick(single(card.New(card.Four, card.Red)))
	r.Next()
	r.Pass()
	r.Next()
	assert.Equal(t, 1, r.CurrentPlayer())
}

func TestNext_DogOnlyWhenLed(t *testing.T) {
	t.Parallel()

	r := newDealtRound(t)
	r.AddTrick(single(card.New(card.Four, card.Red)))
	r.Next()
	r.AddTrick(single(card.Special(card.Dog)))
	r.Next()
	assert.Equal(t, 2, r.CurrentPlayer())
}

func TestNext_SkipsFinishedPlayers(t *testing.T) {
	t.Parallel()

	r := newDealtRound(t)
	assert.Equal(t, Continue, r.MarkFinished(1))

	r.AddTrick(single(card.New(card.Ten, card.Red)))
	assert.Equal(t, Continue, r.Next())
	assert.Equal(t, 2, r.CurrentPlayer())
	assert.Equal(t, 1, r.Passes(), "skipping a finished player counts as a pass")

	r.Pass()
	r.Next()
	assert.Equal(t, 3, r.CurrentPlayer())
	r.Pass()
	assert.Equal(t, TrickWin, r.Next())
	assert.Equal(t, 0, r.CurrentPlayer())
	assert.Equal(t, 10, r.PlayerPoints(0))
}

func TestNext_FinishedPlayerStillCollects(t *testing.T) {
	t.Parallel()

	r := newDealtRound(t)
	r.AddTrick(single(card.New(card.Five, card.Red)))
	r.MarkFinished(0)
	r.Next()
	for range 2 {
		r.Pass()
		r.Next()
	}
	r.Pass()
	assert.Equal(t, TrickWin, r.Next())

	assert.Equal(t, 5, r.PlayerPoints(0))
	assert.Equal(t, 1, r.CurrentPlayer(), "lead moves on from the finished collector")
}

func TestMarkFinished_Scoring(t *testing.T) {
	t.Parallel()

	r := newDealtRound(t)
	r.playerPoints = [Players]int{20, 30, 10, 15}

	assert.Equal(t, Continue, r.MarkFinished(0))
	assert.Equal(t, Continue, r.MarkFinished(1))
	assert.Equal(t, FinishRound, r.MarkFinished(2))

	score, ok := r.LastScore()
	require.True(t, ok)
	// Team 1 keeps 20 + 10, takes the last player's 15 and the 25 left in hand.
	assert.Equal(t, Score{70, 30}, score)
	assert.Equal(t, StateRoundFinished, r.State())
	assert.Equal(t, 0, r.PlayerPoints(0))
}

func TestMarkFinished_RoundAlwaysSumsToHundred(t *testing.T) {
	t.Parallel()

	points := [Players]int{35, -10, 40, 0}
	for _, order := range permutations([]int{0, 1, 2, 3}) {
		if Team(order[0]) == Team(order[1]) {
			continue
		}
		r := newDealtRound(t)
		r.playerPoints = points
		r.MarkFinished(order[0])
		r.MarkFinished(order[1])
		require.Equal(t, FinishRound, r.MarkFinished(order[2]), "%v", order)

		score, _ := r.LastScore()
		assert.Equal(t, RoundPoints, score[0]+score[1], "%v", order)
	}
}

func TestMarkFinished_Shutout(t *testing.T) {
	t.Parallel()

	r := newDealtRound(t)
	r.playerPoints = [Players]int{50, 0, 0, 50}

	assert.Equal(t, Continue, r.MarkFinished(1))
	assert.Equal(t, FinishRound, r.MarkFinished(3))

	score, _ := r.LastScore()
	assert.Equal(t, Score{0, ShutoutBonus}, score)
	assert.Equal(t, Score{0, 200}, r.CurrentScore())
}

func TestMarkFinished_GameWin(t *testing.T) {
	t.Parallel()

	r := newDealtRound(t)
	r.scores = []Score{{500, 100}, {400, 0}}

	r.MarkFinished(0)
	assert.Equal(t, Team1Wins, r.MarkFinished(2))
	assert.Equal(t, StateGameFinished, r.State())
	assert.Equal(t, Score{1100, 100}, r.CurrentScore())

	r.NewGame()
	assert.Empty(t, r.Scores())
	assert.Equal(t, StateDealt, r.State())
}

func TestMarkFinished_Team2Wins(t *testing.T) {
	t.Parallel()

	r := newDealtRound(t)
	r.scores = []Score{{0, 950}}
	r.playerPoints = [Players]int{0, 60, 0, 40}

	r.MarkFinished(1)
	r.MarkFinished(0)
	assert.Equal(t, Team2Wins, r.MarkFinished(2))
}

func TestMarkFinished_Twice(t *testing.T) {
	t.Parallel()

	r := newDealtRound(t)
	r.MarkFinished(0)
	r.MarkFinished(0)
	assert.Equal(t, []int{0}, r.Finished())
}

func permutations(xs []int) [][]int {
	if len(xs) <= 1 {
		return [][]int{append([]int(nil), xs...)}
	}
	var out [][]int
	for i := range xs {
		rest := make([]int, 0, len(xs)-1)
		rest = append(rest, xs[:i]...)
		rest = append(rest, xs[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]int{xs[i]}, p...))
		}
	}
	return out
}
