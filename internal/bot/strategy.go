// Package bot provides pluggable strategies for computer-controlled seats.
// A strategy only ever sees the engine's legal moves, so any strategy is
// rules-correct by construction.
package bot

import (
	"math/rand/v2"

	"schieber-game/internal/jass"
)

// Strategy decides a bot seat's contract choice and card plays.
type Strategy interface {
	// ChooseContract picks the contract for the hand. It may return
	// jass.Schieben when canSchieben is true.
	ChooseContract(hand []jass.Card, canSchieben bool) jass.Contract
	// ChooseCard picks one of the legal cards for the seat. The engine
	// guarantees legal is non-empty.
	ChooseCard(g *jass.Game, seat int, legal []jass.Card) jass.Card
}

// Factory creates a fresh strategy instance for a seat.
type Factory func() Strategy

// Random plays uniformly random legal moves. Useful as a baseline and for
// soak-testing the engine.
type Random struct {
	Rng *rand.Rand
}

// NewRandom creates a Random strategy with its own seeded source.
func NewRandom(seed uint64) *Random {
	return &Random{Rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b9))}
}

func (r *Random) intN(n int) int {
	if r.Rng == nil {
		return rand.IntN(n)
	}
	return r.Rng.IntN(n)
}

func (r *Random) ChooseContract(hand []jass.Card, canSchieben bool) jass.Contract {
	if canSchieben && r.intN(4) == 0 {
		return jass.Schieben
	}
	return jass.Contracts[r.intN(len(jass.Contracts))]
}

func (r *Random) ChooseCard(g *jass.Game, seat int, legal []jass.Card) jass.Card {
	return legal[r.intN(len(legal))]
}
