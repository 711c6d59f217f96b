package rule

import (
	"errors"
	"slices"
	"strings"

	"github.com/palemoky/tichu/internal/game/card"
)

// ErrIndexOutOfRange is returned by Insert and Remove for a bad position.
var ErrIndexOutOfRange = errors.New("index out of range")

// Outcome is the result of comparing two tricks.
type Outcome int

const (
	Incompatible Outcome = iota
	Beats
	Loses
)

func (o Outcome) String() string {
	switch o {
	case Beats:
		return "beats"
	case Loses:
		return "loses"
	}
	return "incompatible"
}

// Trick is an ordered set of cards together with the combination they form.
// The combination is recomputed after every mutation.
type Trick struct {
	cards       []card.Card
	combination Combination
}

// NewTrick builds a trick from cards in the given order.
func NewTrick(cards ...card.Card) *Trick {
	t := &Trick{cards: slices.Clone(cards)}
	t.classify()
	return t
}

func (t *Trick) classify() {
	t.combination = Classify(t.cards)
}

// Push appends c.
func (t *Trick) Push(c card.Card) {
	t.cards = append(t.cards, c)
	t.classify()
}

// Insert puts c at position i, 0 <= i <= Len().
func (t *Trick) Insert(i int, c card.Card) error {
	if i < 0 || i > len(t.cards) {
		return ErrIndexOutOfRange
	}
	t.cards = slices.Insert(t.cards, i, c)
	t.classify()
	return nil
}

// Remove takes out and returns the card at position i.
func (t *Trick) Remove(i int) (card.Card, error) {
	if i < 0 || i >= len(t.cards) {
		return card.Card{}, ErrIndexOutOfRange
	}
	c := t.cards[i]
	t.cards = slices.Delete(t.cards, i, i+1)
	t.classify()
	return c, nil
}

// Empty detaches the current cards into a new Trick and resets t.
func (t *Trick) Empty() *Trick {
	out := &Trick{cards: t.cards, combination: t.combination}
	t.cards = nil
	t.combination = None
	return out
}

// Cards returns a copy of the cards in order.
func (t *Trick) Cards() []card.Card {
	return slices.Clone(t.cards)
}

func (t *Trick) Len() int {
	return len(t.cards)
}

func (t *Trick) Combination() Combination {
	return t.combination
}

func (t *Trick) IsValid() bool {
	return t.combination != None
}

// Points sums the point value of the cards.
func (t *Trick) Points() int {
	return card.Points(t.cards)
}

// IsSingle reports whether t is exactly the single special card k.
func (t *Trick) IsSingle(k card.Kind) bool {
	return len(t.cards) == 1 && t.cards[0].Is(k)
}

func (t *Trick) String() string {
	parts := make([]string, len(t.cards))
	for i, c := range t.cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func (t *Trick) hasPhoenix() bool {
	return slices.ContainsFunc(t.cards, func(c card.Card) bool { return c.Is(card.Phoenix) })
}
