package rule

import (
	"github.com/palemoky/tichu/internal/game/card"
)

// Combination 定义牌型
type Combination int

const (
	None Combination = iota
	Singlet
	Doublet
	Triplet
	FullHouse
	Straight
	Stairs
	Bomb
	StraightFlush
)

var combinationNames = map[Combination]string{
	None:          "none",
	Singlet:       "singlet",
	Doublet:       "doublet",
	Triplet:       "triplet",
	FullHouse:     "fullhouse",
	Straight:      "straight",
	Stairs:        "stairs",
	Bomb:          "bomb",
	StraightFlush: "straightflush",
}

func (c Combination) String() string {
	return combinationNames[c]
}

// Classify returns the combination formed by cards, or None.
//
// The order of cards is significant: straights and stairs must be supplied
// in ascending order of their intended ranks, with the phoenix placed where
// it stands in. Classify never reorders its input.
func Classify(cards []card.Card) Combination {
	n := len(cards)
	switch {
	case n == 0:
		return None
	case n == 1:
		return Singlet
	case n == 2:
		return when(sameGroup(cards), Doublet)
	case n == 3:
		return when(sameGroup(cards), Triplet)
	case n == 4:
		// Stairs of two pairs are not a combination; four cards are a bomb or nothing.
		return when(isBomb(cards), Bomb)
	case n == 5:
		switch {
		case isFullHouse(cards):
			return FullHouse
		case isStraightFlush(cards):
			return StraightFlush
		}
		return when(isStraight(cards), Straight)
	case n%2 == 0:
		switch {
		case isStairs(cards):
			return Stairs
		case isStraightFlush(cards):
			return StraightFlush
		}
		return when(isStraight(cards), Straight)
	}
	return None
}

func when(ok bool, c Combination) Combination {
	if ok {
		return c
	}
	return None
}

// sameGroup reports whether every card matches a single anchor. The anchor
// is the first non-phoenix card so that a leading phoenix cannot join two
// different ranks.
func sameGroup(cards []card.Card) bool {
	anchor := cards[0]
	for _, c := range cards {
		if !c.Is(card.Phoenix) {
			anchor = c
			break
		}
	}
	for _, c := range cards {
		if !card.Matches(anchor, c) {
			return false
		}
	}
	return true
}

// isBomb: four regular cards of one kind. The phoenix cannot complete a bomb.
func isBomb(cards []card.Card) bool {
	for _, c := range cards {
		if !c.IsRegular() || c.Kind != cards[0].Kind {
			return false
		}
	}
	return true
}

func isFullHouse(cards []card.Card) bool {
	return (sameGroup(cards[:2]) && sameGroup(cards[2:])) ||
		(sameGroup(cards[:3]) && sameGroup(cards[3:]))
}

// straightRank is the rank a card occupies inside a straight. The One sits
// directly below the Two.
func straightRank(c card.Card) int {
	if c.Is(card.One) {
		return 1
	}
	return c.Rank
}

// isStraight walks adjacent pairs of an ascending run. Any violating pair
// rejects the whole sequence; no reordering is attempted.
func isStraight(cards []card.Card) bool {
	for i := 0; i+1 < len(cards); i++ {
		cur, next := cards[i], cards[i+1]
		switch {
		case cur.IsRegular():
			if next.Is(card.Phoenix) {
				continue
			}
			if !next.IsRegular() || next.Rank != cur.Rank+1 {
				return false
			}
		case cur.Is(card.Phoenix):
			if !next.IsRegular() {
				return false
			}
			// The phoenix fills exactly one gap.
			if i > 0 && next.Rank != straightRank(cards[i-1])+2 {
				return false
			}
		case cur.Is(card.One):
			if !next.Is(card.Two) && !next.Is(card.Phoenix) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// isStraightFlush: a straight whose cards all share one color. Specials have
// no color, so the One and the phoenix never appear in a straight flush.
func isStraightFlush(cards []card.Card) bool {
	color := cards[0].Color
	if color == card.NoColor {
		return false
	}
	for _, c := range cards {
		if c.Color != color {
			return false
		}
	}
	return isStraight(cards)
}

// isStairs: consecutive pairs laid out as a1 a2 b1 b2 c1 c2 ...; the even and
// the odd positions must each form a straight.
func isStairs(cards []card.Card) bool {
	if len(cards) < 4 || len(cards)%2 != 0 {
		return false
	}
	even := make([]card.Card, 0, len(cards)/2)
	odd := make([]card.Card, 0, len(cards)/2)
	for i := 0; i < len(cards); i += 2 {
		if !card.Matches(cards[i], cards[i+1]) {
			return false
		}
		even = append(even, cards[i])
		odd = append(odd, cards[i+1])
	}
	return isStraight(even) && isStraight(odd)
}
