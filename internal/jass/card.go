package jass

// Suit represents one of the four Swiss Jass suits.
type Suit string

const (
	Eicheln  Suit = "Eicheln"
	Rosen    Suit = "Rosen"
	Schellen Suit = "Schellen"
	Schilten Suit = "Schilten"
)

// Suits lists all four suits in canonical order.
var Suits = []Suit{Eicheln, Rosen, Schellen, Schilten}

// Rank represents a card rank. A Jass deck runs from 6 up to the Ass,
// with Under, Ober and König as the face cards.
type Rank string

const (
	Six    Rank = "6"
	Seven  Rank = "7"
	Eight  Rank = "8"
	Nine   Rank = "9"
	Ten    Rank = "10"
	Under  Rank = "U"
	Ober   Rank = "O"
	Koenig Rank = "K"
	Ass    Rank = "A"
)

// Ranks lists all nine ranks in canonical order (weakest to strongest in a
// plain suit). Sequence (Weis) detection runs along this order.
var Ranks = []Rank{Six, Seven, Eight, Nine, Ten, Under, Ober, Koenig, Ass}

// Card represents a single card. A card is identified by its suit and rank;
// point value and strength are contract-dependent and always derived via
// Points and Order rather than stored on the card.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return string(c.Suit) + " " + string(c.Rank)
}

// canonicalIndex is the position of each rank in Ranks (6=0 .. A=8).
var canonicalIndex = map[Rank]int{
	Six: 0, Seven: 1, Eight: 2, Nine: 3, Ten: 4, Under: 5, Ober: 6, Koenig: 7, Ass: 8,
}

// Rank strength within a suit, per contract. Higher is stronger.
var (
	trumpOrder = map[Rank]int{
		Under: 9, Nine: 8, Ass: 7, Koenig: 6, Ober: 5, Ten: 4, Eight: 3, Seven: 2, Six: 1,
	}
	plainOrder = map[Rank]int{
		Ass: 9, Koenig: 8, Ober: 7, Under: 6, Ten: 5, Nine: 4, Eight: 3, Seven: 2, Six: 1,
	}
	undenufeOrder = map[Rank]int{
		Six: 9, Seven: 8, Eight: 7, Nine: 6, Ten: 5, Under: 4, Ober: 3, Koenig: 2, Ass: 1,
	}
)

// Point values per contract. Each table totals 152 over a full deck.
var (
	trumpPoints = map[Rank]int{
		Under: 20, Nine: 14, Ass: 11, Ten: 10, Koenig: 4, Ober: 3, Eight: 0, Seven: 0, Six: 0,
	}
	plainPoints = map[Rank]int{
		Ass: 11, Ten: 10, Koenig: 4, Ober: 3, Under: 2, Nine: 0, Eight: 0, Seven: 0, Six: 0,
	}
	obenabePoints = map[Rank]int{
		Ass: 11, Ten: 10, Eight: 8, Koenig: 4, Ober: 3, Under: 2, Nine: 0, Seven: 0, Six: 0,
	}
	undenufePoints = map[Rank]int{
		Six: 11, Ten: 10, Eight: 8, Koenig: 4, Ober: 3, Under: 2, Nine: 0, Seven: 0, Ass: 0,
	}
)

// Points returns the card's point value under the given contract.
func (c Card) Points(contract Contract) int {
	switch contract {
	case Obenabe:
		return obenabePoints[c.Rank]
	case Undenufe:
		return undenufePoints[c.Rank]
	default:
		if c.IsTrump(contract) {
			return trumpPoints[c.Rank]
		}
		return plainPoints[c.Rank]
	}
}

// Order returns the card's strength within its own suit under the given
// contract. Higher beats lower; comparisons across suits are the trick
// engine's job.
func (c Card) Order(contract Contract) int {
	switch contract {
	case Undenufe:
		return undenufeOrder[c.Rank]
	case Obenabe:
		return plainOrder[c.Rank]
	default:
		if c.IsTrump(contract) {
			return trumpOrder[c.Rank]
		}
		return plainOrder[c.Rank]
	}
}

// IsTrump reports whether the card is trump under the given contract.
// Obenabe and Undenufe have no trump suit.
func (c Card) IsTrump(contract Contract) bool {
	trump, ok := contract.TrumpSuit()
	return ok && c.Suit == trump
}
