package jass

import (
	"math/rand/v2"
	"testing"
)

func TestNewDeckIntegrity(t *testing.T) {
	deck := NewDeck()
	if len(deck.Cards) != DeckSize {
		t.Fatalf("deck has %d cards, want %d", len(deck.Cards), DeckSize)
	}
	seen := map[Card]bool{}
	for _, c := range deck.Cards {
		if seen[c] {
			t.Fatalf("duplicate card %s in fresh deck", c)
		}
		seen[c] = true
	}
}

func TestShufflePreservesCards(t *testing.T) {
	deck := NewDeck()
	deck.Shuffle(rand.New(rand.NewPCG(7, 7)))
	if len(deck.Cards) != DeckSize {
		t.Fatalf("shuffled deck has %d cards, want %d", len(deck.Cards), DeckSize)
	}
	seen := map[Card]bool{}
	for _, c := range deck.Cards {
		seen[c] = true
	}
	if len(seen) != DeckSize {
		t.Fatalf("shuffle lost cards: %d unique, want %d", len(seen), DeckSize)
	}
}

func TestDeal(t *testing.T) {
	deck := NewDeck()
	deck.Shuffle(rand.New(rand.NewPCG(1, 2)))
	hands := deck.Deal()

	seen := map[Card]bool{}
	for seat, hand := range hands {
		if len(hand) != HandSize {
			t.Fatalf("seat %d dealt %d cards, want %d", seat, len(hand), HandSize)
		}
		for _, c := range hand {
			if seen[c] {
				t.Fatalf("card %s dealt twice", c)
			}
			seen[c] = true
		}
	}
	if len(seen) != DeckSize {
		t.Fatalf("dealt %d unique cards, want %d", len(seen), DeckSize)
	}
	if len(deck.Cards) != 0 {
		t.Fatalf("deck not exhausted after deal: %d cards left", len(deck.Cards))
	}
}
