package combo

import "github.com/ndquang/thirteen/internal/game/card"

// Rejection reasons surfaced to the acting participant. The wording is
// part of the presentation contract.
const (
	ReasonValid        = "Valid play"
	ReasonInvalidCombo = "Invalid combination"
	ReasonMustBeat     = "Must play a stronger combination"
)

// Beats reports whether candidate strictly beats incumbent. Equal
// combinations never beat; cross-family plays of different card counts
// never beat.
func Beats(candidate, incumbent *Combination) bool {
	if candidate == nil || incumbent == nil {
		return false
	}

	if candidate.IsFiveCard() && incumbent.IsFiveCard() {
		return beatsFiveCard(candidate, incumbent)
	}

	// Mismatched card counts cannot compete.
	if len(candidate.Cards) != len(incumbent.Cards) {
		return false
	}
	return beatsBasic(candidate, incumbent)
}

// beatsBasic compares singles, pairs, triples, and four-of-a-kind:
// same type only, rank first, high-card suit as tiebreaker.
func beatsBasic(candidate, incumbent *Combination) bool {
	if candidate.Type != incumbent.Type {
		return false
	}
	if candidate.Rank != incumbent.Rank {
		return candidate.Rank > incumbent.Rank
	}
	return card.Compare(candidate.HighCard, incumbent.HighCard) > 0
}

// beatsFiveCard compares 5-card hands on the fixed strength ladder
// first, then rank, then (full house only) the pair rank, then the
// high card's suit.
func beatsFiveCard(candidate, incumbent *Combination) bool {
	cs, is := fiveCardStrength[candidate.Type], fiveCardStrength[incumbent.Type]
	if cs != is {
		return cs > is
	}
	if candidate.Rank != incumbent.Rank {
		return candidate.Rank > incumbent.Rank
	}
	if candidate.Type == FullHouse && candidate.PairRank != incumbent.PairRank {
		return candidate.PairRank > incumbent.PairRank
	}
	return card.Compare(candidate.HighCard, incumbent.HighCard) > 0
}

// Validation is the outcome of checking a proposed play against the
// table. Combination is set whenever the selection classified, even if
// it failed to beat the incumbent.
type Validation struct {
	Valid       bool
	Reason      string
	Combination *Combination
}

// ValidatePlay is the sole gate for every play. A nil table combination
// means the player is leading and any legal classification stands;
// otherwise the classified selection must beat the table.
func ValidatePlay(selected []card.Card, table *Combination) Validation {
	classified := Classify(selected)
	if classified == nil {
		return Validation{Valid: false, Reason: ReasonInvalidCombo}
	}
	if table == nil {
		return Validation{Valid: true, Reason: ReasonValid, Combination: classified}
	}
	if !Beats(classified, table) {
		return Validation{Valid: false, Reason: ReasonMustBeat, Combination: classified}
	}
	return Validation{Valid: true, Reason: ReasonValid, Combination: classified}
}
