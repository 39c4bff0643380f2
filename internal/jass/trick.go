package jass

import "log"

// PlayedCard stores a card along with the seat that played it.
type PlayedCard struct {
	Card Card `json:"card"`
	Seat int  `json:"seat"`
}

// Trick represents a single trick. The lead suit is fixed by the first card;
// a trick is complete once four cards are in.
type Trick struct {
	Cards      []PlayedCard `json:"cards"`
	Leader     int          `json:"leader"`
	WinnerSeat int          `json:"winner_seat"` // -1 until determined
}

// NewTrick creates an empty trick led by the given seat.
func NewTrick(leader int) *Trick {
	return &Trick{
		Cards:      []PlayedCard{},
		Leader:     leader,
		WinnerSeat: -1,
	}
}

// AddCard adds a card and the seat that played it to the trick. A fifth
// card indicates a caller-side sequencing bug and aborts.
func (t *Trick) AddCard(card Card, seat int) {
	if len(t.Cards) >= 4 {
		log.Panicf("jass: trick already has %d cards", len(t.Cards))
	}
	t.Cards = append(t.Cards, PlayedCard{Card: card, Seat: seat})
}

// Complete reports whether all four cards are in.
func (t *Trick) Complete() bool {
	return len(t.Cards) == 4
}

// LeadSuit returns the suit of the first card played. The second return
// value is false while the trick is empty.
func (t *Trick) LeadSuit() (Suit, bool) {
	if len(t.Cards) == 0 {
		return "", false
	}
	return t.Cards[0].Card.Suit, true
}

// Points returns the sum of the point values of all cards in the trick
// under the given contract.
func (t *Trick) Points(contract Contract) int {
	points := 0
	for _, pc := range t.Cards {
		points += pc.Card.Points(contract)
	}
	return points
}

// DetermineWinner determines the winning seat of a complete trick:
// any trump beats any non-trump; among cards of equal trump status a card
// of the lead suit beats one off suit; within that, the contract's rank
// order decides. Ties are impossible since all cards are distinct.
func (t *Trick) DetermineWinner(contract Contract) int {
	if len(t.Cards) == 0 {
		log.Panicf("jass: cannot determine winner of an empty trick")
	}

	lead := t.Cards[0].Card.Suit
	best := t.Cards[0]
	for _, pc := range t.Cards[1:] {
		if beats(pc.Card, best.Card, lead, contract) {
			best = pc
		}
	}

	t.WinnerSeat = best.Seat
	return best.Seat
}

// Winning returns the play currently taking the trick. The second return
// value is false while the trick is empty.
func (t *Trick) Winning(contract Contract) (PlayedCard, bool) {
	if len(t.Cards) == 0 {
		return PlayedCard{}, false
	}
	lead := t.Cards[0].Card.Suit
	best := t.Cards[0]
	for _, pc := range t.Cards[1:] {
		if beats(pc.Card, best.Card, lead, contract) {
			best = pc
		}
	}
	return best, true
}

// WouldWin reports whether playing the card now would take the trick as it
// stands. True on an empty trick.
func (t *Trick) WouldWin(card Card, contract Contract) bool {
	if len(t.Cards) == 0 {
		return true
	}
	lead := t.Cards[0].Card.Suit
	best := t.Cards[0]
	for _, pc := range t.Cards[1:] {
		if beats(pc.Card, best.Card, lead, contract) {
			best = pc
		}
	}
	return beats(card, best.Card, lead, contract)
}

// beats reports whether card a beats card b given the lead suit and contract.
func beats(a, b Card, lead Suit, contract Contract) bool {
	aTrump, bTrump := a.IsTrump(contract), b.IsTrump(contract)
	if aTrump != bTrump {
		return aTrump
	}
	if aTrump {
		return a.Order(contract) > b.Order(contract)
	}

	aLead, bLead := a.Suit == lead, b.Suit == lead
	if aLead != bLead {
		return aLead
	}
	if aLead {
		return a.Order(contract) > b.Order(contract)
	}
	// Two off-suit non-trump cards: neither can win, keep the incumbent.
	return false
}
