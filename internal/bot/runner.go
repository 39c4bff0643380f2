package bot

import (
	"fmt"
	"log"

	"schieber-game/internal/jass"
)

// Act performs the single engine action the seat owes right now: a contract
// choice during selection, or a card during play. It is a no-op when the
// seat has nothing to do. A strategy's rejected choice falls back to a legal
// one so a buggy strategy can never stall a match; the rejection is logged
// since it points at a strategy bug.
func Act(g *jass.Game, seat int, s Strategy) error {
	switch g.Phase {
	case jass.PhaseContractSelection:
		if g.Selector != seat {
			return nil
		}
		contract := s.ChooseContract(g.Players[seat].Hand, !g.Shoved)
		if err := g.SelectContract(seat, contract); err != nil {
			log.Printf("bot seat %d: contract %q rejected (%v), falling back", seat, contract, err)
			return g.SelectContract(seat, jass.Contracts[0])
		}
		return nil

	case jass.PhasePlaying:
		if g.TurnSeat != seat {
			return nil
		}
		legal := g.LegalCards(seat)
		if len(legal) == 0 {
			return fmt.Errorf("bot seat %d has no legal cards", seat)
		}
		card := s.ChooseCard(g, seat, legal)
		if err := g.PlayCard(seat, card); err != nil {
			log.Printf("bot seat %d: card %s rejected (%v), falling back", seat, card, err)
			return g.PlayCard(seat, legal[0])
		}
		return nil
	}
	return nil
}
