package jass

// Contract is the trump regime chosen for one hand: one of the four suits,
// or one of the two suit-less modes Obenabe (top-down) and Undenufe
// (bottom-up). Schieben is not a contract of its own; it passes the choice
// to the selector's partner exactly once.
type Contract string

const (
	TrumpEicheln  Contract = "eicheln"
	TrumpRosen    Contract = "rosen"
	TrumpSchellen Contract = "schellen"
	TrumpSchilten Contract = "schilten"
	Obenabe       Contract = "obenabe"
	Undenufe      Contract = "undenufe"

	// Schieben passes the contract choice to the partner. Only accepted by
	// SelectContract, never stored as the active contract.
	Schieben Contract = "schieben"
)

// Contracts lists all playable contracts (Schieben excluded).
var Contracts = []Contract{
	TrumpEicheln, TrumpRosen, TrumpSchellen, TrumpSchilten, Obenabe, Undenufe,
}

var contractTrump = map[Contract]Suit{
	TrumpEicheln:  Eicheln,
	TrumpRosen:    Rosen,
	TrumpSchellen: Schellen,
	TrumpSchilten: Schilten,
}

var contractMultiplier = map[Contract]int{
	TrumpEicheln:  1,
	TrumpRosen:    1,
	TrumpSchellen: 2,
	TrumpSchilten: 2,
	Obenabe:       3,
	Undenufe:      4,
}

// Valid reports whether c is a playable contract.
func (c Contract) Valid() bool {
	_, ok := contractMultiplier[c]
	return ok
}

// TrumpSuit returns the trump suit of a suit contract. The second return
// value is false for Obenabe and Undenufe.
func (c Contract) TrumpSuit() (Suit, bool) {
	s, ok := contractTrump[c]
	return s, ok
}

// Multiplier returns the score multiplier of the contract:
// Eicheln/Rosen 1x, Schellen/Schilten 2x, Obenabe 3x, Undenufe 4x.
func (c Contract) Multiplier() int {
	if m, ok := contractMultiplier[c]; ok {
		return m
	}
	return 1
}
