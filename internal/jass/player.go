package jass

// Player holds the per-seat state of one hand. Seats 0-3 form a fixed
// rotation; seats 0/2 and 1/3 are partners. Identity (accounts, names) is
// the calling layer's concern, the engine only knows seats.
type Player struct {
	Seat      int    `json:"seat"`
	Hand      []Card `json:"hand"`
	Weis      []Weis `json:"weis"`
	TricksWon int    `json:"tricks_won"`
}

// NewPlayer creates the player for a seat with an empty hand.
func NewPlayer(seat int) *Player {
	return &Player{Seat: seat, Hand: []Card{}}
}

// Team returns the player's team index (0 for seats 0/2, 1 for seats 1/3).
func (p *Player) Team() int {
	return p.Seat % 2
}

// HasCard reports whether the card is in the player's hand.
func (p *Player) HasCard(card Card) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// HasSuit reports whether the player holds at least one card of the suit.
func (p *Player) HasSuit(suit Suit) bool {
	for _, c := range p.Hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// RemoveCard removes a card from the player's hand. Returns false if the
// card is not held.
func (p *Player) RemoveCard(card Card) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// TeamOf returns the team index for a seat.
func TeamOf(seat int) int {
	return seat % 2
}

// PartnerOf returns the seat of a seat's partner.
func PartnerOf(seat int) int {
	return (seat + 2) % 4
}
