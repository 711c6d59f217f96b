package card

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry is a hand card with its per-round identifier.
type Entry struct {
	ID   int
	Card Card
}

// FormatHand renders a hand listing as "<id>=<card>" pairs joined by commas.
func FormatHand(entries []Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = strconv.Itoa(e.ID) + "=" + e.Card.String()
	}
	return strings.Join(parts, ",")
}

// ParseHand is the inverse of FormatHand.
func ParseHand(s string) ([]Entry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	entries := make([]Entry, 0, len(fields))
	for _, f := range fields {
		idStr, name, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("malformed hand entry %q", f)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil {
			return nil, fmt.Errorf("malformed card id %q: %w", idStr, err)
		}
		c, err := Parse(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{ID: id, Card: c})
	}
	return entries, nil
}

// ParseCards parses a space separated card list, as used in trick pushes.
func ParseCards(s string) ([]Card, error) {
	var cards []Card
	for _, f := range strings.Fields(s) {
		c, err := Parse(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
