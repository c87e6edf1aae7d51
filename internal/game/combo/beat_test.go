package combo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndquang/thirteen/internal/game/card"
)

func mustClassify(t *testing.T, cards ...card.Card) *Combination {
	t.Helper()
	combo := Classify(cards)
	require.NotNil(t, combo, "expected %v to classify", cards)
	return combo
}

func TestBeats(t *testing.T) {
	tests := []struct {
		name      string
		candidate []card.Card
		incumbent []card.Card
		want      bool
	}{
		{
			name:      "Higher rank beats regardless of suit",
			candidate: []card.Card{c(card.RankJ, card.Diamond)},
			incumbent: []card.Card{c(card.Rank10, card.Spade)},
			want:      true,
		},
		{
			name:      "Lower rank loses regardless of suit",
			candidate: []card.Card{c(card.Rank10, card.Spade)},
			incumbent: []card.Card{c(card.RankJ, card.Diamond)},
			want:      false,
		},
		{
			name:      "Same rank decided by suit",
			candidate: []card.Card{c(card.Rank7, card.Spade)},
			incumbent: []card.Card{c(card.Rank7, card.Heart)},
			want:      true,
		},
		{
			name: "Equal-rank pairs decided by highest suit",
			candidate: []card.Card{
				c(card.Rank8, card.Club), c(card.Rank8, card.Spade),
			},
			incumbent: []card.Card{
				c(card.Rank8, card.Diamond), c(card.Rank8, card.Heart),
			},
			want: true,
		},
		{
			name:      "Single cannot answer a pair",
			candidate: []card.Card{c(card.Rank2, card.Spade)},
			incumbent: []card.Card{c(card.Rank3, card.Diamond), c(card.Rank3, card.Club)},
			want:      false,
		},
		{
			name: "Quad cannot answer a pair",
			candidate: []card.Card{
				c(card.RankA, card.Diamond), c(card.RankA, card.Club),
				c(card.RankA, card.Heart), c(card.RankA, card.Spade),
			},
			incumbent: []card.Card{c(card.Rank3, card.Diamond), c(card.Rank3, card.Club)},
			want:      false,
		},
		{
			name: "Flush beats straight",
			candidate: []card.Card{
				c(card.Rank3, card.Heart), c(card.Rank5, card.Heart), c(card.Rank7, card.Heart),
				c(card.Rank9, card.Heart), c(card.RankJ, card.Heart),
			},
			incumbent: []card.Card{
				c(card.Rank10, card.Diamond), c(card.RankJ, card.Club), c(card.RankQ, card.Heart),
				c(card.RankK, card.Spade), c(card.RankA, card.Diamond),
			},
			want: true,
		},
		{
			name: "Full house beats flush",
			candidate: []card.Card{
				c(card.Rank4, card.Diamond), c(card.Rank4, card.Club), c(card.Rank4, card.Heart),
				c(card.Rank6, card.Diamond), c(card.Rank6, card.Spade),
			},
			incumbent: []card.Card{
				c(card.Rank3, card.Heart), c(card.Rank5, card.Heart), c(card.Rank7, card.Heart),
				c(card.Rank9, card.Heart), c(card.RankA, card.Heart),
			},
			want: true,
		},
		{
			name: "Straight flush beats full house",
			candidate: []card.Card{
				c(card.Rank5, card.Spade), c(card.Rank6, card.Spade), c(card.Rank7, card.Spade),
				c(card.Rank8, card.Spade), c(card.Rank9, card.Spade),
			},
			incumbent: []card.Card{
				c(card.RankA, card.Diamond), c(card.RankA, card.Club), c(card.RankA, card.Heart),
				c(card.RankK, card.Diamond), c(card.RankK, card.Spade),
			},
			want: true,
		},
		{
			name: "Royal flush beats straight flush",
			candidate: []card.Card{
				c(card.RankJ, card.Club), c(card.RankQ, card.Club), c(card.RankK, card.Club),
				c(card.RankA, card.Club), c(card.Rank2, card.Club),
			},
			incumbent: []card.Card{
				c(card.Rank10, card.Heart), c(card.RankJ, card.Heart), c(card.RankQ, card.Heart),
				c(card.RankK, card.Heart), c(card.RankA, card.Heart),
			},
			want: true,
		},
		{
			name: "Full houses compare by triple rank",
			candidate: []card.Card{
				c(card.Rank9, card.Diamond), c(card.Rank9, card.Club), c(card.Rank9, card.Heart),
				c(card.Rank3, card.Diamond), c(card.Rank3, card.Club),
			},
			incumbent: []card.Card{
				c(card.Rank8, card.Diamond), c(card.Rank8, card.Club), c(card.Rank8, card.Heart),
				c(card.RankA, card.Diamond), c(card.RankA, card.Spade),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := mustClassify(t, tt.candidate...)
			incumbent := mustClassify(t, tt.incumbent...)
			assert.Equal(t, tt.want, Beats(candidate, incumbent))
		})
	}
}

// Beats must be a strict order: nothing beats itself, and no two
// combinations beat each other.
func TestBeatsAntisymmetric(t *testing.T) {
	combos := []*Combination{
		mustClassify(t, c(card.Rank3, card.Diamond)),
		mustClassify(t, c(card.Rank3, card.Spade)),
		mustClassify(t, c(card.Rank2, card.Spade)),
		mustClassify(t, c(card.Rank8, card.Diamond), c(card.Rank8, card.Heart)),
		mustClassify(t, c(card.Rank8, card.Club), c(card.Rank8, card.Spade)),
		mustClassify(t,
			c(card.Rank4, card.Diamond), c(card.Rank5, card.Club), c(card.Rank6, card.Heart),
			c(card.Rank7, card.Spade), c(card.Rank8, card.Diamond)),
		mustClassify(t,
			c(card.Rank3, card.Heart), c(card.Rank5, card.Heart), c(card.Rank7, card.Heart),
			c(card.Rank9, card.Heart), c(card.RankJ, card.Heart)),
		mustClassify(t,
			c(card.Rank8, card.Diamond), c(card.Rank8, card.Club), c(card.Rank8, card.Heart),
			c(card.RankK, card.Diamond), c(card.RankK, card.Spade)),
	}

	for i, a := range combos {
		assert.False(t, Beats(a, a), "combo %d beats itself", i)
		for j, b := range combos {
			if i == j {
				continue
			}
			assert.False(t, Beats(a, b) && Beats(b, a),
				"combos %d and %d beat each other", i, j)
		}
	}
}

func TestValidatePlay(t *testing.T) {
	table := mustClassify(t, c(card.Rank10, card.Spade))

	t.Run("Leading accepts any legal combination", func(t *testing.T) {
		v := ValidatePlay([]card.Card{c(card.Rank3, card.Diamond)}, nil)
		assert.True(t, v.Valid)
		assert.Equal(t, ReasonValid, v.Reason)
		require.NotNil(t, v.Combination)
	})

	t.Run("Garbage selection rejected before comparison", func(t *testing.T) {
		v := ValidatePlay([]card.Card{c(card.Rank3, card.Diamond), c(card.Rank4, card.Club)}, table)
		assert.False(t, v.Valid)
		assert.Equal(t, ReasonInvalidCombo, v.Reason)
	})

	t.Run("Weaker play rejected with must-beat", func(t *testing.T) {
		v := ValidatePlay([]card.Card{c(card.Rank9, card.Heart)}, table)
		assert.False(t, v.Valid)
		assert.Equal(t, ReasonMustBeat, v.Reason)
		assert.NotNil(t, v.Combination, "classification survives a failed comparison")
	})

	t.Run("Stronger play accepted", func(t *testing.T) {
		v := ValidatePlay([]card.Card{c(card.RankJ, card.Diamond)}, table)
		assert.True(t, v.Valid)
	})
}
