// Package combo classifies card selections into Thirteen combinations
// and decides whether one combination beats another. Every play in the
// game, local or remote, passes through ValidatePlay before it is
// allowed to touch game state.
package combo

import (
	"github.com/ndquang/thirteen/internal/game/card"
)

// Type identifies a combination category.
type Type int

const (
	Single Type = iota
	Pair
	Triple
	FourOfAKind
	Straight
	Flush
	FullHouse
	StraightFlush
	RoyalFlush
)

var typeNames = map[Type]string{
	Single:        "Single",
	Pair:          "Pair",
	Triple:        "Triple",
	FourOfAKind:   "Four of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Invalid"
}

// fiveCardStrength is the cross-type ladder for 5-card hands. Higher
// strength beats lower regardless of rank.
var fiveCardStrength = map[Type]int{
	Straight:      0,
	Flush:         1,
	FullHouse:     2,
	StraightFlush: 3,
	RoyalFlush:    4,
}

// Combination is a classified, rankable group of 1-5 cards. It is a
// transient value recomputed on every validation, never stored as truth.
type Combination struct {
	Type     Type        `json:"type"`
	Rank     card.Rank   `json:"rank"`               // comparable rank (triple's rank for a full house)
	PairRank card.Rank   `json:"pairRank,omitempty"` // full house only
	HighCard card.Card   `json:"highCard"`           // suit tiebreaker
	Cards    []card.Card `json:"cards"`
}

// IsFiveCard reports whether the combination belongs to the 5-card family.
func (c *Combination) IsFiveCard() bool {
	return len(c.Cards) == 5
}

// Classify determines which combination, if any, the given cards form.
// Selection order is irrelevant; the cards are sorted internally. A nil
// result means the selection is not a legal combination.
func Classify(cards []card.Card) *Combination {
	if len(cards) == 0 {
		return nil
	}
	sorted := card.Sorted(cards)

	switch len(sorted) {
	case 1:
		return &Combination{Type: Single, Rank: sorted[0].Rank, HighCard: sorted[0], Cards: sorted}
	case 2:
		return classifyOfAKind(sorted, Pair)
	case 3:
		return classifyOfAKind(sorted, Triple)
	case 4:
		return classifyOfAKind(sorted, FourOfAKind)
	case 5:
		return classifyFiveCard(sorted)
	}
	return nil
}

// classifyOfAKind handles pairs, triples, and four-of-a-kind: every card
// must share one rank. The highest-suited card is the tiebreaker.
func classifyOfAKind(sorted []card.Card, t Type) *Combination {
	for _, c := range sorted[1:] {
		if c.Rank != sorted[0].Rank {
			return nil
		}
	}
	return &Combination{
		Type:     t,
		Rank:     sorted[0].Rank,
		HighCard: sorted[len(sorted)-1],
		Cards:    sorted,
	}
}

// classifyFiveCard evaluates the 5-card family in fixed precedence:
// royal flush, straight flush, full house, flush, straight. The checks
// are mutually exclusive by construction given this order.
func classifyFiveCard(sorted []card.Card) *Combination {
	flush := isFlush(sorted)
	straight := isStraight(sorted)
	high := sorted[4]

	if flush && straight {
		t := StraightFlush
		if high.Rank == card.Rank2 {
			t = RoyalFlush
		}
		return &Combination{Type: t, Rank: high.Rank, HighCard: high, Cards: sorted}
	}

	if tripleRank, pairRank, ok := fullHouseRanks(sorted); ok {
		return &Combination{
			Type:     FullHouse,
			Rank:     tripleRank,
			PairRank: pairRank,
			HighCard: highestOfRank(sorted, tripleRank),
			Cards:    sorted,
		}
	}

	if flush {
		return &Combination{Type: Flush, Rank: high.Rank, HighCard: high, Cards: sorted}
	}
	if straight {
		return &Combination{Type: Straight, Rank: high.Rank, HighCard: high, Cards: sorted}
	}
	return nil
}

func isFlush(sorted []card.Card) bool {
	for _, c := range sorted[1:] {
		if c.Suit != sorted[0].Suit {
			return false
		}
	}
	return true
}

// isStraight requires five strictly consecutive ranks in strength order.
// There is no wraparound: 2 sits above the Ace, so K-A-2-3-4 is not a
// straight, while J-Q-K-A-2 is.
func isStraight(sorted []card.Card) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank != sorted[i-1].Rank+1 {
			return false
		}
	}
	return true
}

// fullHouseRanks reports the triple and pair ranks when the cards split
// into exactly a three-of-a-kind plus a pair.
func fullHouseRanks(sorted []card.Card) (tripleRank, pairRank card.Rank, ok bool) {
	counts := make(map[card.Rank]int, 2)
	for _, c := range sorted {
		counts[c.Rank]++
	}
	if len(counts) != 2 {
		return 0, 0, false
	}
	for r, n := range counts {
		switch n {
		case 3:
			tripleRank = r
		case 2:
			pairRank = r
		default:
			return 0, 0, false
		}
	}
	return tripleRank, pairRank, true
}

func highestOfRank(cards []card.Card, r card.Rank) card.Card {
	var ofRank []card.Card
	for _, c := range cards {
		if c.Rank == r {
			ofRank = append(ofRank, c)
		}
	}
	return card.Highest(ofRank)
}
