package jass

import (
	"log"
	"math/rand/v2"
)

// DeckSize is the number of cards in a Jass deck (4 suits x 9 ranks).
const DeckSize = 36

// HandSize is the number of cards dealt to each of the four seats.
const HandSize = 9

// Deck represents a collection of cards.
type Deck struct {
	Cards []Card
}

// NewDeck creates the standard 36-card Jass deck.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	return &Deck{Cards: cards}
}

// Shuffle randomizes the order of cards in the deck using the given source.
// A nil rng falls back to the shared source.
func (d *Deck) Shuffle(rng *rand.Rand) {
	if rng == nil {
		rand.Shuffle(len(d.Cards), func(i, j int) {
			d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
		})
		return
	}
	rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Deal distributes the full deck into four hands of nine cards each and
// empties the deck. A deck of the wrong size is a caller-side sequencing
// bug and aborts.
func (d *Deck) Deal() [4][]Card {
	if len(d.Cards) != DeckSize {
		log.Panicf("jass: cannot deal from a deck of %d cards, want %d", len(d.Cards), DeckSize)
	}

	var dealt [4][]Card
	start := 0
	for i := 0; i < 4; i++ {
		hand := make([]Card, HandSize)
		copy(hand, d.Cards[start:start+HandSize])
		dealt[i] = hand
		start += HandSize
	}

	d.Cards = []Card{}
	return dealt
}
