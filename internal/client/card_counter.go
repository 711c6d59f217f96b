package client

import "github.com/palemoky/tichu/internal/game/card"

// CardCounter tracks the cards of each kind not yet seen on the table
type CardCounter struct {
	remaining map[card.Kind]int
}

// NewCardCounter creates and initializes a new card counter
func NewCardCounter() *CardCounter {
	cc := &CardCounter{
		remaining: make(map[card.Kind]int),
	}
	cc.Reset()
	return cc
}

// Reset initializes counter with a full deck
func (cc *CardCounter) Reset() {
	// 普通牌每种 4 张
	for k := card.Two; k <= card.King; k++ {
		cc.remaining[k] = len(card.Colors)
	}
	// 特殊牌各 1 张
	for _, k := range []card.Kind{card.Dragon, card.Phoenix, card.Dog, card.One} {
		cc.remaining[k] = 1
	}
}

// DeductCards removes played cards from the counter
func (cc *CardCounter) DeductCards(cards []card.Card) {
	for _, c := range cards {
		if cc.remaining[c.Kind] > 0 {
			cc.remaining[c.Kind]--
		}
	}
}

// Remaining returns the unseen count of kind k
func (cc *CardCounter) Remaining(k card.Kind) int {
	return cc.remaining[k]
}

// Total is the number of cards not yet played this round.
func (cc *CardCounter) Total() int {
	total := 0
	for _, n := range cc.remaining {
		total += n
	}
	return total
}
