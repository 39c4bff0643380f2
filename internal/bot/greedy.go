package bot

import (
	"schieber-game/internal/jass"
)

// Greedy is a simple point-driven strategy: it declares the contract its
// hand supports best, takes tricks with the cheapest winning card and dumps
// its lowest card otherwise. No card counting, no signalling.
type Greedy struct{}

// NewGreedy creates a Greedy strategy.
func NewGreedy() *Greedy { return &Greedy{} }

// contractScore rates how well the hand supports a contract. Suit contracts
// are rated by trump length and the top trumps; the suit-less contracts by
// the cards that become top cards under their rank order.
func contractScore(hand []jass.Card, contract jass.Contract) int {
	score := 0
	if trump, ok := contract.TrumpSuit(); ok {
		for _, c := range hand {
			if c.Suit != trump {
				continue
			}
			score += 2
			switch c.Rank {
			case jass.Under:
				score += 6
			case jass.Nine:
				score += 4
			case jass.Ass:
				score += 2
			}
		}
		return score
	}
	for _, c := range hand {
		switch contract {
		case jass.Obenabe:
			if c.Rank == jass.Ass || c.Rank == jass.Koenig {
				score += 3
			}
		case jass.Undenufe:
			if c.Rank == jass.Six || c.Rank == jass.Seven {
				score += 3
			}
		}
	}
	return score
}

func (s *Greedy) ChooseContract(hand []jass.Card, canSchieben bool) jass.Contract {
	best := jass.Contracts[0]
	bestScore := -1
	for _, contract := range jass.Contracts {
		if score := contractScore(hand, contract); score > bestScore {
			best, bestScore = contract, score
		}
	}
	// A hand with no real backing is the partner's problem.
	if canSchieben && bestScore < 12 {
		return jass.Schieben
	}
	return best
}

func (s *Greedy) ChooseCard(g *jass.Game, seat int, legal []jass.Card) jass.Card {
	trick := g.CurrentTrick
	contract := g.Contract

	lowest := legal[0]
	for _, c := range legal[1:] {
		if c.Points(contract) < lowest.Points(contract) ||
			(c.Points(contract) == lowest.Points(contract) && c.Order(contract) < lowest.Order(contract)) {
			lowest = c
		}
	}

	// Let a winning partner keep the trick; as last to play there is no one
	// left to beat them.
	if winning, ok := trick.Winning(contract); ok {
		if jass.TeamOf(winning.Seat) == jass.TeamOf(seat) && len(trick.Cards) == 3 {
			return lowest
		}
	}

	// Cheapest card that takes the trick as it stands.
	var take *jass.Card
	for i, c := range legal {
		if !trick.WouldWin(c, contract) {
			continue
		}
		if take == nil || c.Points(contract) < take.Points(contract) ||
			(c.Points(contract) == take.Points(contract) && c.Order(contract) < take.Order(contract)) {
			take = &legal[i]
		}
	}
	if take != nil {
		return *take
	}
	return lowest
}
