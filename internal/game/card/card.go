package card

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind 定义牌的种类：12 种普通牌和 4 张特殊牌
type Kind int

const (
	Two Kind = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King

	Dragon
	Phoenix
	Dog
	One
)

// Color 定义普通牌的颜色，特殊牌没有颜色
type Color int

const (
	NoColor Color = iota
	Black
	Blue
	Green
	Red
)

var colorNames = map[Color]string{
	Black: "black",
	Blue:  "blue",
	Green: "green",
	Red:   "red",
}

func (c Color) String() string {
	return colorNames[c]
}

// Colors lists the four suit colors in deck order.
var Colors = []Color{Black, Blue, Green, Red}

var specialNames = map[Kind]string{
	Dragon:  "dragon",
	Phoenix: "phoenix",
	Dog:     "dog",
	One:     "one",
}

var faceNames = map[Kind]string{
	Jack:  "J",
	Queen: "Q",
	King:  "K",
}

// IsSpecial reports whether k is one of the four unique special cards.
func (k Kind) IsSpecial() bool {
	return k >= Dragon
}

func (k Kind) String() string {
	if name, ok := specialNames[k]; ok {
		return name
	}
	if name, ok := faceNames[k]; ok {
		return name
	}
	return strconv.Itoa(int(k) + 2)
}

// Card is an immutable value describing one physical card.
type Card struct {
	Kind  Kind
	Color Color
	Rank  int // 2..13 for regular cards, 14 for the Dragon, 0 for the other specials
	Value int // points scored by the team that collects the card
}

// New returns the regular card of kind k and color c, or the special card k
// (its color is dropped).
func New(k Kind, c Color) Card {
	if k.IsSpecial() {
		return Special(k)
	}

	value := 0
	switch k {
	case Five:
		value = 5
	case Ten, King:
		value = 10
	}
	return Card{Kind: k, Color: c, Rank: int(k) + 2, Value: value}
}

// Special returns one of the four special cards.
func Special(k Kind) Card {
	c := Card{Kind: k, Color: NoColor}
	switch k {
	case Dragon:
		c.Rank, c.Value = 14, 25
	case Phoenix:
		c.Value = -25
	}
	return c
}

// IsRegular reports whether c is one of the 48 ranked, colored cards.
func (c Card) IsRegular() bool {
	return !c.Kind.IsSpecial()
}

// Is reports whether c is the special card k.
func (c Card) Is(k Kind) bool {
	return c.Kind == k
}

func (c Card) String() string {
	if c.Kind.IsSpecial() {
		return c.Kind.String()
	}
	return c.Kind.String() + c.Color.String()
}

// Matches reports whether other belongs to the same group as anchor.
//
// Two cards match when their kinds are equal, and the Phoenix matches every
// regular card. The relation is not transitive (the Phoenix matches both a
// Six and a Seven), so it must only be evaluated against one fixed anchor and
// never used to cluster an unordered set of cards.
func Matches(anchor, other Card) bool {
	if anchor.Kind == other.Kind {
		return true
	}
	if anchor.Is(Phoenix) {
		return other.IsRegular()
	}
	if other.Is(Phoenix) {
		return anchor.IsRegular()
	}
	return false
}

// kindByName 用于解析牌面字符串
var kindByName = map[string]Kind{
	"2": Two, "3": Three, "4": Four, "5": Five, "6": Six, "7": Seven, "8": Eight,
	"9": Nine, "10": Ten, "J": Jack, "Q": Queen, "K": King,
}

// Parse is the inverse of Card.String.
func Parse(s string) (Card, error) {
	s = strings.TrimSpace(s)
	for k, name := range specialNames {
		if strings.EqualFold(s, name) {
			return Special(k), nil
		}
	}
	for c, name := range colorNames {
		prefix, ok := strings.CutSuffix(s, name)
		if !ok {
			continue
		}
		if k, ok := kindByName[strings.ToUpper(prefix)]; ok {
			return New(k, c), nil
		}
	}
	return Card{}, fmt.Errorf("unknown card: %q", s)
}
