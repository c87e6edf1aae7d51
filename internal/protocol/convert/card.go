// Package convert maps engine card values to and from their wire form.
package convert

import (
	"github.com/ndquang/thirteen/internal/game/card"
	"github.com/ndquang/thirteen/internal/protocol"
)

// CardToInfo converts one card to its wire form.
func CardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{Rank: int(c.Rank), Suit: int(c.Suit)}
}

// InfoToCard converts one wire card back to an engine card.
func InfoToCard(info protocol.CardInfo) card.Card {
	return card.Card{Rank: card.Rank(info.Rank), Suit: card.Suit(info.Suit)}
}

// CardsToInfos converts a card slice to wire form.
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// InfosToCards converts wire cards back to engine cards.
func InfosToCards(infos []protocol.CardInfo) []card.Card {
	cards := make([]card.Card, len(infos))
	for i, info := range infos {
		cards[i] = InfoToCard(info)
	}
	return cards
}
