//go:build !production

package testutil

import (
	"github.com/palemoky/tichu/internal/game/card"
)

// FixedDealer deals the same hands every round, in seat order.
type FixedDealer struct {
	Hands [4][]card.Card
}

func (d *FixedDealer) Shuffle() {}

func (d *FixedDealer) Deal() [4][]card.Card {
	var hands [4][]card.Card
	for i, h := range d.Hands {
		hands[i] = append([]card.Card(nil), h...)
	}
	return hands
}
