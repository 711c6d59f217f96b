package server

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/palemoky/tichu/internal/apperrors"
	"github.com/palemoky/tichu/internal/game/card"
	"github.com/palemoky/tichu/internal/game/round"
	"github.com/palemoky/tichu/internal/protocol"
)

// TakeCards hands the seat its pending hand and lists it.
func (t *Table) TakeCards(seat *Seat) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.round.State() == round.StateWaiting {
		return apperrors.ErrNotStarted
	}
	hand := t.round.TakeHand(seat.Index)
	if hand == nil {
		return apperrors.ErrNoHand
	}
	seat.player.TakeHand(hand)
	seat.Send(protocol.OK(card.FormatHand(seat.player.Hand())))
	return nil
}

// Play puts the cards with ids on the table; with no ids the staged cards
// are played.
func (t *Table) Play(seat *Seat, ids []int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkTurn(seat); err != nil {
		return err
	}
	trick, err := seat.player.Play(t.round.CurrentTrick(), ids)
	if err != nil {
		return err
	}

	t.round.AddTrick(trick)
	seat.Send(protocol.OK(""))
	t.broadcast(protocol.Push(protocol.TopicNewTrick, fmt.Sprintf("%d:%s", seat.Index, trick)))
	log.Debug().Str("game", t.gameID).Int("seat", seat.Index).Stringer("trick", trick).Stringer("combination", trick.Combination()).Msg("trick played")

	if !seat.player.HasCards() {
		status := t.round.MarkFinished(seat.Index)
		t.broadcast(protocol.Push(protocol.TopicFinished, strconv.Itoa(seat.Index)))
		log.Info().Str("game", t.gameID).Int("seat", seat.Index).Msg("player finished")
		if status != round.Continue {
			t.endRound(status)
			return nil
		}
	}
	t.advance()
	return nil
}

// Pass gives up the turn. Leading players cannot pass.
func (t *Table) Pass(seat *Seat) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkTurn(seat); err != nil {
		return err
	}
	if t.round.CurrentTrick() == nil {
		return apperrors.ErrMustPlay
	}

	t.round.Pass()
	seat.Send(protocol.OK(""))
	t.broadcast(protocol.Push(protocol.TopicPass, strconv.Itoa(seat.Index)))
	t.advance()
	return nil
}

// Stage moves hand card id into the staging area and previews its shape.
func (t *Table) Stage(seat *Seat, id, pos int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	combination, err := seat.player.Stage(id, pos)
	if err != nil {
		return err
	}
	seat.Send(protocol.OK(combination.String()))
	return nil
}

func (t *Table) Unstage(seat *Seat, pos, handPos int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	combination, err := seat.player.Unstage(pos, handPos)
	if err != nil {
		return err
	}
	seat.Send(protocol.OK(combination.String()))
	return nil
}

// Hand re-lists the seat's unstaged cards.
func (t *Table) Hand(seat *Seat) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	seat.Send(protocol.OK(card.FormatHand(seat.player.Hand())))
}

// Score answers with the cumulative team scores.
func (t *Table) Score(seat *Seat) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	total := t.round.CurrentScore()
	seat.Send(protocol.OK(fmt.Sprintf("%d,%d", total[0], total[1])))
}

// GameID is the id rounds of the current game are recorded under; empty
// before the first game starts.
func (t *Table) GameID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.gameID
}
