package card

import "math/rand/v2"

const (
	// DeckSize is 12 regular kinds in 4 colors plus the 4 special cards.
	DeckSize = 52
	// HandSize is the number of cards each of the four players is dealt.
	HandSize = DeckSize / 4
)

// Deck 定义一副牌
type Deck []Card

// NewDeck returns the full, ordered deck.
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, c := range Colors {
		for k := Two; k <= King; k++ {
			deck = append(deck, New(k, c))
		}
	}
	return append(deck, Special(Dragon), Special(Phoenix), Special(Dog), Special(One))
}

func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Deal splits the deck into four hands of HandSize cards. Each hand is a
// fresh slice so callers may keep and mutate it.
func (d Deck) Deal() [4][]Card {
	var hands [4][]Card
	for i := range hands {
		hands[i] = make([]Card, 0, HandSize)
	}
	for i, c := range d {
		hands[i%4] = append(hands[i%4], c)
	}
	return hands
}

// Points sums the point value of cards.
func Points(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Value
	}
	return total
}
