package card

import "strconv"

// Suit is a card suit. The zero value is Diamond, the weakest suit;
// ordering follows the Thirteen convention ♦ < ♣ < ♥ < ♠.
type Suit int

const (
	Diamond Suit = iota
	Club
	Heart
	Spade
)

// suitSymbols maps suits to their display symbols.
var suitSymbols = map[Suit]string{
	Diamond: "♦",
	Club:    "♣",
	Heart:   "♥",
	Spade:   "♠",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// Rank is a card rank. Numeric order is strength order: 3 is the
// weakest rank and 2 the strongest, above the Ace.
type Rank int

const (
	Rank3 Rank = iota + 3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
	Rank2
)

// rankNames maps ranks to their display strings.
var rankNames = map[Rank]string{
	Rank3:  "3",
	Rank4:  "4",
	Rank5:  "5",
	Rank6:  "6",
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
	RankA:  "A",
	Rank2:  "2",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Card is an immutable (rank, suit) pair. Identity is the pair itself,
// so cards compare with == and no two cards in one deck are equal.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Compare orders two cards by rank, then by suit. It returns a negative
// number if a is weaker than b, positive if stronger, zero if identical.
func Compare(a, b Card) int {
	if a.Rank != b.Rank {
		return int(a.Rank) - int(b.Rank)
	}
	return int(a.Suit) - int(b.Suit)
}

// Less reports whether a is strictly weaker than b.
func Less(a, b Card) bool {
	return Compare(a, b) < 0
}
