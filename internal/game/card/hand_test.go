package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHand(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{ID: 0, Card: New(Queen, Red)},
		{ID: 4, Card: New(Ten, Black)},
		{ID: 12, Card: Special(Phoenix)},
	}
	s := FormatHand(entries)
	assert.Equal(t, "0=Qred,4=10black,12=phoenix", s)

	parsed, err := ParseHand(s)
	require.NoError(t, err)
	assert.Equal(t, entries, parsed)
}

func TestParseHand_Errors(t *testing.T) {
	t.Parallel()

	empty, err := ParseHand("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, s := range []string{"0Qred", "x=Qred", "1=Zred"} {
		_, err := ParseHand(s)
		assert.Error(t, err, s)
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	cards, err := ParseCards("Kred 10blue  dragon")
	require.NoError(t, err)
	assert.Equal(t, []Card{New(King, Red), New(Ten, Blue), Special(Dragon)}, cards)

	_, err = ParseCards("Kred nope")
	assert.Error(t, err)
}
