package combo

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndquang/thirteen/internal/game/card"
)

func c(r card.Rank, s card.Suit) card.Card {
	return card.Card{Rank: r, Suit: s}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		cards    []card.Card
		wantType Type
		wantNil  bool
	}{
		{
			name:     "Single",
			cards:    []card.Card{c(card.Rank7, card.Heart)},
			wantType: Single,
		},
		{
			name:     "Pair",
			cards:    []card.Card{c(card.Rank9, card.Diamond), c(card.Rank9, card.Spade)},
			wantType: Pair,
		},
		{
			name:    "Mixed ranks are not a pair",
			cards:   []card.Card{c(card.Rank9, card.Diamond), c(card.Rank10, card.Spade)},
			wantNil: true,
		},
		{
			name:     "Triple",
			cards:    []card.Card{c(card.RankQ, card.Diamond), c(card.RankQ, card.Club), c(card.RankQ, card.Heart)},
			wantType: Triple,
		},
		{
			name: "Four of a kind",
			cards: []card.Card{
				c(card.Rank5, card.Diamond), c(card.Rank5, card.Club),
				c(card.Rank5, card.Heart), c(card.Rank5, card.Spade),
			},
			wantType: FourOfAKind,
		},
		{
			name: "Four mixed cards are nothing",
			cards: []card.Card{
				c(card.Rank5, card.Diamond), c(card.Rank6, card.Club),
				c(card.Rank7, card.Heart), c(card.Rank8, card.Spade),
			},
			wantNil: true,
		},
		{
			name: "Straight",
			cards: []card.Card{
				c(card.Rank4, card.Diamond), c(card.Rank5, card.Club), c(card.Rank6, card.Heart),
				c(card.Rank7, card.Spade), c(card.Rank8, card.Diamond),
			},
			wantType: Straight,
		},
		{
			name: "No wraparound straight",
			cards: []card.Card{
				c(card.RankK, card.Diamond), c(card.RankA, card.Club), c(card.Rank2, card.Heart),
				c(card.Rank3, card.Spade), c(card.Rank4, card.Diamond),
			},
			wantNil: true,
		},
		{
			name: "Flush",
			cards: []card.Card{
				c(card.Rank3, card.Heart), c(card.Rank6, card.Heart), c(card.Rank9, card.Heart),
				c(card.RankJ, card.Heart), c(card.RankA, card.Heart),
			},
			wantType: Flush,
		},
		{
			name: "Full house",
			cards: []card.Card{
				c(card.Rank8, card.Diamond), c(card.Rank8, card.Club), c(card.Rank8, card.Heart),
				c(card.RankK, card.Diamond), c(card.RankK, card.Spade),
			},
			wantType: FullHouse,
		},
		{
			name: "Straight flush",
			cards: []card.Card{
				c(card.Rank5, card.Spade), c(card.Rank6, card.Spade), c(card.Rank7, card.Spade),
				c(card.Rank8, card.Spade), c(card.Rank9, card.Spade),
			},
			wantType: StraightFlush,
		},
		{
			name: "Royal flush tops out at the 2",
			cards: []card.Card{
				c(card.RankJ, card.Club), c(card.RankQ, card.Club), c(card.RankK, card.Club),
				c(card.RankA, card.Club), c(card.Rank2, card.Club),
			},
			wantType: RoyalFlush,
		},
		{
			name: "Ace-high suited run is only a straight flush",
			cards: []card.Card{
				c(card.Rank10, card.Heart), c(card.RankJ, card.Heart), c(card.RankQ, card.Heart),
				c(card.RankK, card.Heart), c(card.RankA, card.Heart),
			},
			wantType: StraightFlush,
		},
		{
			name:    "Empty selection",
			cards:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.cards)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantType, got.Type)
		})
	}
}

// Classification must not depend on selection order.
func TestClassifyOrderIndependent(t *testing.T) {
	hands := [][]card.Card{
		{c(card.Rank9, card.Diamond), c(card.Rank9, card.Spade)},
		{
			c(card.Rank8, card.Diamond), c(card.Rank8, card.Club), c(card.Rank8, card.Heart),
			c(card.RankK, card.Diamond), c(card.RankK, card.Spade),
		},
		{
			c(card.Rank4, card.Diamond), c(card.Rank5, card.Club), c(card.Rank6, card.Heart),
			c(card.Rank7, card.Spade), c(card.Rank8, card.Diamond),
		},
	}

	for _, hand := range hands {
		want := Classify(hand)
		require.NotNil(t, want)
		for i := 0; i < 10; i++ {
			shuffled := card.Sorted(hand) // copy
			rand.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})
			got := Classify(shuffled)
			require.NotNil(t, got)
			assert.Equal(t, want.Type, got.Type)
			assert.Equal(t, want.Rank, got.Rank)
			assert.Equal(t, want.HighCard, got.HighCard)
		}
	}
}

func TestFullHouseRankFields(t *testing.T) {
	got := Classify([]card.Card{
		c(card.Rank8, card.Diamond), c(card.Rank8, card.Club), c(card.Rank8, card.Heart),
		c(card.RankK, card.Diamond), c(card.RankK, card.Spade),
	})
	require.NotNil(t, got)
	assert.Equal(t, card.Rank8, got.Rank, "full house ranks by its triple")
	assert.Equal(t, card.RankK, got.PairRank)
	assert.Equal(t, c(card.Rank8, card.Heart), got.HighCard)
}
