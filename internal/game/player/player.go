// Package player holds one seat's hand and staging area.
package player

import (
	"slices"

	"github.com/palemoky/tichu/internal/apperrors"
	"github.com/palemoky/tichu/internal/game/card"
	"github.com/palemoky/tichu/internal/game/rule"
)

// Player is a hand keyed by per-round card ids. Ids are never reused within a
// round, so a stale id from the client cannot alias another card after a
// removal. It is not safe for concurrent use.
type Player struct {
	Name string

	cards  map[int]card.Card
	order  []int // hand display order, staged ids excluded
	staged []int // staging area, in play order
}

func New(name string) *Player {
	return &Player{Name: name, cards: make(map[int]card.Card)}
}

// TakeHand replaces the hand with cards, numbered 0..len-1 in the dealt order.
func (p *Player) TakeHand(cards []card.Card) {
	p.cards = make(map[int]card.Card, len(cards))
	p.order = make([]int, 0, len(cards))
	p.staged = nil
	for id, c := range cards {
		p.cards[id] = c
		p.order = append(p.order, id)
	}
}

func (p *Player) HasCards() bool {
	return len(p.cards) > 0
}

// Len is the number of cards held, staged ones included.
func (p *Player) Len() int {
	return len(p.cards)
}

// Hand lists the unstaged cards in display order.
func (p *Player) Hand() []card.Entry {
	return p.entries(p.order)
}

// Staged lists the staged cards in play order.
func (p *Player) Staged() []card.Entry {
	return p.entries(p.staged)
}

func (p *Player) entries(ids []int) []card.Entry {
	out := make([]card.Entry, len(ids))
	for i, id := range ids {
		out[i] = card.Entry{ID: id, Card: p.cards[id]}
	}
	return out
}

// Stage moves hand card id into the staging area at pos. Positions past the
// end append. It returns the shape the staged cards currently form.
func (p *Player) Stage(id, pos int) (rule.Combination, error) {
	i := slices.Index(p.order, id)
	if i < 0 {
		return rule.None, apperrors.ErrInvalidCard
	}
	p.order = slices.Delete(p.order, i, i+1)
	p.staged = slices.Insert(p.staged, clamp(pos, len(p.staged)), id)
	return p.stagedTrick().Combination(), nil
}

// Unstage moves the staged card at pos back into the hand at handPos.
func (p *Player) Unstage(pos, handPos int) (rule.Combination, error) {
	if pos < 0 || pos >= len(p.staged) {
		return rule.None, apperrors.ErrBadIndex
	}
	id := p.staged[pos]
	p.staged = slices.Delete(p.staged, pos, pos+1)
	p.order = slices.Insert(p.order, clamp(handPos, len(p.order)), id)
	return p.stagedTrick().Combination(), nil
}

func (p *Player) stagedTrick() *rule.Trick {
	t := rule.NewTrick()
	for _, id := range p.staged {
		t.Push(p.cards[id])
	}
	return t
}

// Play builds a trick from ids, in the given order, and checks it against top,
// the trick currently on the table (nil when the table is empty). With no ids
// the staged cards are played. On success the cards leave the hand and the
// returned trick belongs to the caller. On failure nothing changes.
func (p *Player) Play(top *rule.Trick, ids []int) (*rule.Trick, error) {
	if len(ids) == 0 {
		ids = p.staged
	}
	if len(ids) == 0 {
		return nil, apperrors.ErrNotValid
	}

	candidate := rule.NewTrick()
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		c, ok := p.cards[id]
		if !ok || seen[id] {
			return nil, apperrors.ErrInvalidCard
		}
		seen[id] = true
		candidate.Push(c)
	}

	if top == nil {
		if !candidate.IsValid() {
			return nil, apperrors.ErrNotValid
		}
	} else {
		switch candidate.Tops(top) {
		case rule.Loses:
			return nil, apperrors.ErrTooLow
		case rule.Incompatible:
			return nil, apperrors.ErrIncompatible
		}
	}

	for id := range seen {
		delete(p.cards, id)
	}
	played := func(id int) bool { return seen[id] }
	p.order = slices.DeleteFunc(p.order, played)
	p.staged = slices.DeleteFunc(p.staged, played)
	return candidate, nil
}

func clamp(i, n int) int {
	return max(0, min(i, n))
}
