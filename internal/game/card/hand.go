package card

import "slices"

// Sort orders cards in place, weakest first (rank, then suit).
func Sort(cards []Card) {
	slices.SortFunc(cards, Compare)
}

// Sorted returns a sorted copy, leaving the input untouched.
func Sorted(cards []Card) []Card {
	sorted := slices.Clone(cards)
	Sort(sorted)
	return sorted
}

// Highest returns the strongest card of a non-empty set.
func Highest(cards []Card) Card {
	high := cards[0]
	for _, c := range cards[1:] {
		if Less(high, c) {
			high = c
		}
	}
	return high
}

// Lowest returns the weakest card of a non-empty set.
func Lowest(cards []Card) Card {
	low := cards[0]
	for _, c := range cards[1:] {
		if Less(c, low) {
			low = c
		}
	}
	return low
}

// GroupByRank buckets cards by rank.
func GroupByRank(cards []Card) map[Rank][]Card {
	groups := make(map[Rank][]Card)
	for _, c := range cards {
		groups[c.Rank] = append(groups[c.Rank], c)
	}
	return groups
}

// GroupBySuit buckets cards by suit.
func GroupBySuit(cards []Card) map[Suit][]Card {
	groups := make(map[Suit][]Card)
	for _, c := range cards {
		groups[c.Suit] = append(groups[c.Suit], c)
	}
	return groups
}

// Remove returns hand without the given cards. The hand is not modified.
func Remove(hand, toRemove []Card) []Card {
	result := make([]Card, 0, len(hand))
	for _, c := range hand {
		if !slices.Contains(toRemove, c) {
			result = append(result, c)
		}
	}
	return result
}

// ContainsAll reports whether every card in want is present in hand.
// Each held card satisfies at most one request, so a duplicated card in
// want cannot be covered by a single copy in hand.
func ContainsAll(hand, want []Card) bool {
	remaining := slices.Clone(hand)
	for _, c := range want {
		i := slices.Index(remaining, c)
		if i < 0 {
			return false
		}
		remaining = slices.Delete(remaining, i, i+1)
	}
	return true
}
