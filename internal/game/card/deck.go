package card

import "math/rand/v2"

// Game dimensions for a four-seat Thirteen table.
const (
	NumPlayers     = 4
	CardsPerPlayer = 13
	DeckSize       = 52
)

// Deck is an ordered sequence of the 52 distinct cards. A deck is built
// fresh for every round and consumed by dealing; it is never reused.
type Deck []Card

// NewDeck returns the full 52-card deck in canonical order.
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for s := Diamond; s <= Spade; s++ {
		for r := Rank3; r <= Rank2; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// Shuffle permutes the deck in place.
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Deal distributes the deck round-robin into NumPlayers hands of
// CardsPerPlayer cards each, sorted weakest first.
func (d Deck) Deal() [][]Card {
	hands := make([][]Card, NumPlayers)
	for i := range hands {
		hands[i] = make([]Card, 0, CardsPerPlayer)
	}
	for i := 0; i < CardsPerPlayer; i++ {
		for seat := 0; seat < NumPlayers; seat++ {
			hands[seat] = append(hands[seat], d[i*NumPlayers+seat])
		}
	}
	for _, hand := range hands {
		Sort(hand)
	}
	return hands
}

// DealHands builds, shuffles, and deals a fresh deck in one step.
func DealHands() [][]Card {
	deck := NewDeck()
	deck.Shuffle()
	return deck.Deal()
}
