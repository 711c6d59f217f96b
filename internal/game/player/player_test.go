package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/tichu/internal/apperrors"
	"github.com/palemoky/tichu/internal/game/card"
	"github.com/palemoky/tichu/internal/game/rule"
)

// testHand: 0=6red 1=6blue 2=7red 3=Kgreen 4=phoenix 5=dragon
func newTestPlayer(t *testing.T) *Player {
	t.Helper()
	p := New("alice")
	p.TakeHand([]card.Card{
		card.New(card.Six, card.Red),
		card.New(card.Six, card.Blue),
		card.New(card.Seven, card.Red),
		card.New(card.King, card.Green),
		card.Special(card.Phoenix),
		card.Special(card.Dragon),
	})
	return p
}

func TestTakeHand(t *testing.T) {
	t.Parallel()

	p := newTestPlayer(t)
	assert.True(t, p.HasCards())
	assert.Equal(t, 6, p.Len())
	assert.Equal(t, "0=6red,1=6blue,2=7red,3=Kgreen,4=phoenix,5=dragon", card.FormatHand(p.Hand()))

	p.TakeHand(nil)
	assert.False(t, p.HasCards())
}

func TestPlay_Lead(t *testing.T) {
	t.Parallel()

	p := newTestPlayer(t)
	trick, err := p.Play(nil, []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, rule.Doublet, trick.Combination())
	assert.Equal(t, 4, p.Len())

	// The ids of the played cards are gone for good.
	_, err = p.Play(nil, []int{0})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCard)
	assert.Equal(t, "2=7red,3=Kgreen,4=phoenix,5=dragon", card.FormatHand(p.Hand()))
}

func TestPlay_Errors(t *testing.T) {
	t.Parallel()

	pairOfFives := rule.NewTrick(card.New(card.Five, card.Red), card.New(card.Five, card.Blue))
	kings := rule.NewTrick(card.New(card.King, card.Red), card.New(card.King, card.Blue))

	tests := []struct {
		name string
		top  *rule.Trick
		ids  []int
		want error
	}{
		{"unknown id", nil, []int{9}, apperrors.ErrInvalidCard},
		{"duplicate id", nil, []int{0, 0}, apperrors.ErrInvalidCard},
		{"not a combination", nil, []int{0, 2}, apperrors.ErrNotValid},
		{"nothing staged", nil, nil, apperrors.ErrNotValid},
		{"too low", kings, []int{0, 1}, apperrors.ErrTooLow},
		{"wrong shape", pairOfFives, []int{5}, apperrors.ErrIncompatible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer(t)
			_, err := p.Play(tt.top, tt.ids)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 6, p.Len(), "a rejected play keeps the hand")
		})
	}
}

func TestPlay_Beats(t *testing.T) {
	t.Parallel()

	p := newTestPlayer(t)
	top := rule.NewTrick(card.New(card.Five, card.Red), card.New(card.Five, card.Blue))

	trick, err := p.Play(top, []int{2, 4})
	require.NoError(t, err)
	assert.Equal(t, "7red phoenix", trick.String())
}

func TestStage(t *testing.T) {
	t.Parallel()

	p := newTestPlayer(t)

	combo, err := p.Stage(0, 0)
	require.NoError(t, err)
	assert.Equal(t, rule.Singlet, combo)

	combo, err = p.Stage(2, 5) // past the end appends
	require.NoError(t, err)
	assert.Equal(t, rule.None, combo)

	combo, err = p.Stage(1, 1)
	require.NoError(t, err)
	assert.Equal(t, rule.None, combo)
	assert.Equal(t, "0=6red,1=6blue,2=7red", card.FormatHand(p.Staged()))

	combo, err = p.Unstage(2, 0)
	require.NoError(t, err)
	assert.Equal(t, rule.Doublet, combo)
	assert.Equal(t, "2=7red,3=Kgreen,4=phoenix,5=dragon", card.FormatHand(p.Hand()))

	_, err = p.Stage(0, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCard, "staged cards cannot be staged twice")
	_, err = p.Unstage(7, 0)
	assert.ErrorIs(t, err, apperrors.ErrBadIndex)

	trick, err := p.Play(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, rule.Doublet, trick.Combination())
	assert.Empty(t, p.Staged())
	assert.Equal(t, 4, p.Len())
}

func TestPlay_ExplicitIdsLeaveOtherStagedCards(t *testing.T) {
	t.Parallel()

	p := newTestPlayer(t)
	_, err := p.Stage(5, 0)
	require.NoError(t, err)
	_, err = p.Stage(3, 1)
	require.NoError(t, err)

	_, err = p.Play(nil, []int{5})
	require.NoError(t, err)
	assert.Equal(t, "3=Kgreen", card.FormatHand(p.Staged()))
}
