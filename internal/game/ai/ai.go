// Package ai picks plays for computer seats. The heuristics here are
// advisory only: the state machine revalidates every returned selection
// exactly as it would a human's, so a buggy decision can never corrupt
// game state.
package ai

import (
	"math/rand/v2"
	"slices"

	"github.com/ndquang/thirteen/internal/game/card"
	"github.com/ndquang/thirteen/internal/game/combo"
	"github.com/ndquang/thirteen/internal/game/engine"
)

// Action says whether the AI wants to play or pass.
type Action int

const (
	Play Action = iota
	Pass
)

// Decision is the AI's answer for one turn. Cards is set only for Play.
type Decision struct {
	Action Action
	Cards  []card.Card
}

// chance is split out so tests can pin the strategic coin flips.
var chance = rand.Float64

// Decide picks an action for the given seat. With an empty table it
// leads; otherwise it searches the hand for beating candidates and
// weighs whether spending one is worth it.
func Decide(p *engine.Player, table *combo.Combination, s *engine.GameState) Decision {
	if table == nil {
		return lead(p.Hand)
	}

	candidates := findCandidates(p.Hand, table)
	if len(candidates) == 0 {
		return Decision{Action: Pass}
	}
	if !worthPlaying(p.Hand, candidates, table) {
		return Decision{Action: Pass}
	}
	return Decision{Action: Play, Cards: selectBest(candidates, len(p.Hand)).Cards}
}

// lead chooses an opening play: dump rank groups from the bottom up,
// try a 5-card hand, and fall back to the lowest single.
func lead(hand []card.Card) Decision {
	if len(hand) == 1 {
		return Decision{Action: Play, Cards: slices.Clone(hand)}
	}

	groups := card.GroupByRank(hand)
	ranks := make([]card.Rank, 0, len(groups))
	for r := range groups {
		ranks = append(ranks, r)
	}
	slices.Sort(ranks)

	for _, r := range ranks {
		group := groups[r]
		switch {
		case len(group) >= 4:
			return Decision{Action: Play, Cards: group[:4]}
		case len(group) == 3:
			return Decision{Action: Play, Cards: group}
		case len(group) == 2 && len(hand) < 8:
			// Near the endgame, shed pairs aggressively.
			return Decision{Action: Play, Cards: group}
		}
	}

	if len(hand) >= 5 {
		if five := bestFiveCard(hand); five != nil {
			return Decision{Action: Play, Cards: five}
		}
	}
	return Decision{Action: Play, Cards: []card.Card{card.Lowest(hand)}}
}

// findCandidates enumerates classified selections from the hand that
// beat the table combination, cheapest first by construction.
func findCandidates(hand []card.Card, table *combo.Combination) []*combo.Combination {
	var candidates []*combo.Combination
	add := func(cards []card.Card) {
		if v := combo.ValidatePlay(cards, table); v.Valid {
			candidates = append(candidates, v.Combination)
		}
	}

	switch len(table.Cards) {
	case 1:
		for _, c := range hand {
			add([]card.Card{c})
		}
	case 2, 3, 4:
		want := len(table.Cards)
		for _, group := range card.GroupByRank(hand) {
			if len(group) >= want {
				add(group[:want])
			}
		}
	case 5:
		for _, five := range allFiveCard(hand) {
			add(five)
		}
	}
	return candidates
}

// allFiveCard finds the straights, flushes, and full houses present in
// the hand. It does not enumerate every 5-card subset; these three
// families cover what the lead and follow heuristics can use.
func allFiveCard(hand []card.Card) [][]card.Card {
	var found [][]card.Card

	// Straights: sliding window over the sorted hand.
	sorted := card.Sorted(hand)
	for i := 0; i+5 <= len(sorted); i++ {
		window := sorted[i : i+5]
		consecutive := true
		for j := 1; j < 5; j++ {
			if window[j].Rank != window[j-1].Rank+1 {
				consecutive = false
				break
			}
		}
		if consecutive {
			found = append(found, slices.Clone(window))
		}
	}

	// Flushes: lowest five of any long suit.
	for _, suited := range card.GroupBySuit(hand) {
		if len(suited) >= 5 {
			found = append(found, card.Sorted(suited)[:5])
		}
	}

	// Full houses: every triple paired with every other rank's pair.
	groups := card.GroupByRank(hand)
	for tripleRank, trip := range groups {
		if len(trip) < 3 {
			continue
		}
		for pairRank, pair := range groups {
			if pairRank == tripleRank || len(pair) < 2 {
				continue
			}
			house := append(slices.Clone(trip[:3]), pair[:2]...)
			found = append(found, house)
		}
	}
	return found
}

// bestFiveCard prefers straights, flushes, and full houses as leads.
func bestFiveCard(hand []card.Card) []card.Card {
	all := allFiveCard(hand)
	for _, cards := range all {
		c := combo.Classify(cards)
		if c == nil {
			continue
		}
		switch c.Type {
		case combo.Straight, combo.Flush, combo.FullHouse:
			return cards
		}
	}
	if len(all) > 0 {
		return all[0]
	}
	return nil
}

// worthPlaying decides whether to spend a candidate or hold. Close to
// going out it always plays; otherwise it mixes in randomness so four
// AI seats don't play in lockstep.
func worthPlaying(hand []card.Card, candidates []*combo.Combination, table *combo.Combination) bool {
	cardsLeft := len(hand)
	if cardsLeft <= 2 {
		return true
	}
	if cardsLeft <= 5 {
		best := candidates[0]
		if best.Type == combo.FourOfAKind || best.Type == combo.Triple {
			return true
		}
		return chance() > 0.5
	}
	// Cheap tables are worth contesting.
	if table.Type == combo.Single && table.Rank < card.Rank9 {
		return chance() > 0.4
	}
	highCards := 0
	for _, c := range hand {
		if c.Rank >= card.RankQ {
			highCards++
		}
	}
	if highCards >= 5 {
		return chance() > 0.7
	}
	return chance() > 0.5
}

// selectBest picks the candidate to play: shed the most cards when the
// hand is short, otherwise spend the weakest combination first.
func selectBest(candidates []*combo.Combination, cardsLeft int) *combo.Combination {
	sorted := slices.Clone(candidates)
	if cardsLeft <= 5 {
		slices.SortFunc(sorted, func(a, b *combo.Combination) int {
			return len(b.Cards) - len(a.Cards)
		})
		return sorted[0]
	}
	slices.SortFunc(sorted, func(a, b *combo.Combination) int {
		if a.Rank != b.Rank {
			return int(a.Rank) - int(b.Rank)
		}
		return len(a.Cards) - len(b.Cards)
	})
	return sorted[0]
}
