package rule

import (
	"github.com/palemoky/tichu/internal/game/card"
)

// Tops reports whether t, played on top of other, beats it.
//
// Ties never beat: a trick must be strictly higher to top the table.
func (t *Trick) Tops(other *Trick) Outcome {
	if other == nil || !t.IsValid() || !other.IsValid() {
		return Incompatible
	}

	switch {
	case t.combination == StraightFlush:
		if other.combination == StraightFlush {
			if other.Len() > t.Len() || (other.Len() == t.Len() && other.startRank() >= t.startRank()) {
				return Loses
			}
		}
		return Beats
	case t.combination == Bomb:
		if other.combination == StraightFlush || (other.combination == Bomb && other.cards[0].Rank >= t.cards[0].Rank) {
			return Loses
		}
		return Beats
	case t.combination != other.combination:
		return Incompatible
	}

	switch t.combination {
	case Straight:
		if t.Len() != other.Len() {
			return outcome(t.Len() > other.Len())
		}
		return outcome(t.highRank() > other.highRank())
	case Stairs:
		// Stairs only top stairs of the same length.
		if t.Len() != other.Len() {
			return Incompatible
		}
		return outcome(runHigh(t.evenRow()) > runHigh(other.evenRow()))
	case Singlet:
		return topsSinglet(t.cards[0], other.cards[0])
	default:
		return outcome(t.TotalRank() > other.TotalRank())
	}
}

func outcome(beats bool) Outcome {
	if beats {
		return Beats
	}
	return Loses
}

func topsSinglet(c, other card.Card) Outcome {
	switch {
	case c.Is(card.Dragon):
		return Beats
	case other.Is(card.Dragon):
		return Loses
	case c.Is(card.Phoenix):
		return Beats
	}
	return outcome(c.Rank > other.Rank)
}

// startRank is the rank of the lowest card of a run.
func (t *Trick) startRank() int { return runStart(t.cards) }

// highRank is the rank of the highest card of a run.
func (t *Trick) highRank() int { return runHigh(t.cards) }

func runStart(cards []card.Card) int {
	if cards[0].Is(card.Phoenix) && len(cards) > 1 {
		return straightRank(cards[1]) - 1
	}
	return straightRank(cards[0])
}

// runHigh reads the top of a run from the end farthest from the phoenix: the
// last card, unless the phoenix itself is last, in which case it is derived
// from the first card.
func runHigh(cards []card.Card) int {
	last := cards[len(cards)-1]
	if !last.Is(card.Phoenix) {
		return last.Rank
	}
	return runStart(cards) + len(cards) - 1
}

// evenRow 楼梯的偶数位一列
func (t *Trick) evenRow() []card.Card {
	row := make([]card.Card, 0, len(t.cards)/2)
	for i := 0; i < len(t.cards); i += 2 {
		row = append(row, t.cards[i])
	}
	return row
}

// TotalRank values a doublet, triplet or full house.
//
// Without the phoenix it is the sum of the ranks. With the phoenix, a doublet
// or triplet counts as len × the one real rank. In a full house the layout
// decides which group the phoenix completes: whichever of the 2|3 and 3|2
// splits classifies gives the trio. Only when both splits classify does the
// higher rank take the trio slot.
func (t *Trick) TotalRank() int {
	if !t.hasPhoenix() {
		total := 0
		for _, c := range t.cards {
			total += c.Rank
		}
		return total
	}

	switch t.combination {
	case Doublet, Triplet:
		return len(t.cards) * groupRank(t.cards)
	case FullHouse:
		cards := t.cards
		pairFirst := sameGroup(cards[:2]) && sameGroup(cards[2:])
		trioFirst := sameGroup(cards[:3]) && sameGroup(cards[3:])

		var trio, pair int
		switch {
		case pairFirst && trioFirst:
			a, b := groupRank(cards[:2]), groupRank(cards[3:])
			trio, pair = max(a, b), min(a, b)
		case trioFirst:
			trio, pair = groupRank(cards[:3]), groupRank(cards[3:])
		default:
			trio, pair = groupRank(cards[2:]), groupRank(cards[:2])
		}
		return 3*trio + 2*pair
	}
	return 0
}

// groupRank is the rank of the first real card of a group.
func groupRank(cards []card.Card) int {
	for _, c := range cards {
		if !c.Is(card.Phoenix) {
			return c.Rank
		}
	}
	return 0
}
