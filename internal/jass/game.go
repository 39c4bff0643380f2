package jass

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
)

// Phase represents the current phase of a match.
type Phase string

const (
	PhaseDealing           Phase = "dealing"            // awaiting StartHand
	PhaseContractSelection Phase = "contract_selection" // selector picks a contract or schiebt
	PhasePlaying           Phase = "playing"            // players play tricks
	PhaseResolving         Phase = "resolving"          // trick complete, awaiting ResolveTrick
	PhaseHandFinished      Phase = "hand_finished"      // hand settled, awaiting next StartHand
	PhaseMatchFinished     Phase = "match_finished"     // target score reached
)

// Expected legality rejections. The caller decides whether to retry or
// notify the player; the match state is unchanged after any of these.
var (
	ErrWrongPhase      = errors.New("wrong phase")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrCardNotHeld     = errors.New("card not in hand")
	ErrMustFollowSuit  = errors.New("must follow the lead suit")
	ErrInvalidContract = errors.New("invalid contract")
	ErrCannotSchieben  = errors.New("cannot schieben twice")
)

// Config carries the rule-level knobs of a match. Zero values select the
// defaults.
type Config struct {
	TargetScore    int // match ends at this cumulative score, default 1000
	MatchBonus     int // bonus for taking every trick of a hand, default 100
	LastTrickBonus int // bonus on the ninth trick, default 5
	// MultiplierBothTeams applies the contract multiplier to both teams'
	// hand totals. The default scopes it to the declaring team only.
	MultiplierBothTeams bool
	// Rand is the shuffle source; nil uses the shared source. Inject a
	// seeded source for deterministic play.
	Rand *rand.Rand
}

// HandResult is the settlement breakdown of one completed hand.
type HandResult struct {
	Contract    Contract `json:"contract"`
	Declarer    int      `json:"declarer"`
	TrickPoints [2]int   `json:"trick_points"`
	WeisPoints  [2]int   `json:"weis_points"`
	MatchBonus  [2]int   `json:"match_bonus"`
	Totals      [2]int   `json:"totals"`
}

// Game is the state of one Schieber match: four seats, two teams, hands
// dealt and played until a team reaches the target score.
//
// The engine performs no locking and holds no global state; exactly one
// state-mutating call may be in flight per Game, and callers own the
// serialization (one lock or goroutine per active match).
type Game struct {
	Config  Config
	Players [4]*Player
	Phase   Phase

	Dealer   int      // -1 before the first hand
	Selector int      // seat entitled to pick the contract
	Shoved   bool     // schieben already used this hand
	Declarer int      // -1 until the contract is fixed
	Contract Contract // "" until fixed

	CurrentTrick    *Trick
	CompletedTricks []*Trick
	TurnSeat        int

	TrickPoints [2]int // raw trick points of the running hand
	Scores      [2]int // cumulative match scores
	HandsPlayed int
	LastHand    *HandResult
	WinnerTeam  int // -1 until the match is decided
}

// NewGame creates a fresh match in the dealing phase. Call StartHand to
// deal the first hand.
func NewGame(cfg Config) *Game {
	if cfg.TargetScore == 0 {
		cfg.TargetScore = 1000
	}
	if cfg.MatchBonus == 0 {
		cfg.MatchBonus = 100
	}
	if cfg.LastTrickBonus == 0 {
		cfg.LastTrickBonus = 5
	}

	g := &Game{
		Config:     cfg,
		Phase:      PhaseDealing,
		Dealer:     -1,
		Selector:   -1,
		Declarer:   -1,
		TurnSeat:   -1,
		WinnerTeam: -1,
	}
	for i := range g.Players {
		g.Players[i] = NewPlayer(i)
	}
	return g
}

// StartHand rotates the dealer forward by one seat, deals a fresh hand and
// opens contract selection for the seat left of the dealer.
func (g *Game) StartHand() error {
	if g.Phase != PhaseDealing && g.Phase != PhaseHandFinished {
		return fmt.Errorf("%w: cannot start a hand in phase %s", ErrWrongPhase, g.Phase)
	}

	g.Dealer = (g.Dealer + 1) % 4

	deck := NewDeck()
	deck.Shuffle(g.Config.Rand)
	hands := deck.Deal()
	for i, p := range g.Players {
		p.Hand = hands[i]
		p.Weis = nil
		p.TricksWon = 0
	}
	g.validateDeal()

	g.Contract = ""
	g.Declarer = -1
	g.Shoved = false
	g.Selector = (g.Dealer + 1) % 4
	g.TurnSeat = g.Selector
	g.CurrentTrick = nil
	g.CompletedTricks = nil
	g.TrickPoints = [2]int{}
	g.Phase = PhaseContractSelection
	return nil
}

// SetHands replaces the dealt hands before the contract is fixed. Intended
// for deterministic harnesses and state restoration; the replacement must
// again cover the full deck.
func (g *Game) SetHands(hands [4][]Card) error {
	if g.Phase != PhaseContractSelection {
		return fmt.Errorf("%w: hands can only be replaced during contract selection", ErrWrongPhase)
	}
	seen := map[Card]bool{}
	for i, hand := range hands {
		if len(hand) != HandSize {
			return fmt.Errorf("seat %d must hold %d cards, got %d", i, HandSize, len(hand))
		}
		for _, c := range hand {
			if seen[c] {
				return fmt.Errorf("duplicate card %s", c)
			}
			seen[c] = true
		}
	}
	if len(seen) != DeckSize {
		return fmt.Errorf("expected %d unique cards, got %d", DeckSize, len(seen))
	}
	for i := range hands {
		g.Players[i].Hand = append([]Card{}, hands[i]...)
	}
	return nil
}

// validateDeal aborts on a structurally broken deal; reaching this is an
// engine bug, not a caller mistake.
func (g *Game) validateDeal() {
	seen := map[Card]bool{}
	for _, p := range g.Players {
		if len(p.Hand) != HandSize {
			log.Panicf("jass: seat %d dealt %d cards, want %d", p.Seat, len(p.Hand), HandSize)
		}
		for _, c := range p.Hand {
			if seen[c] {
				log.Panicf("jass: duplicate card %s dealt", c)
			}
			seen[c] = true
		}
	}
	if len(seen) != DeckSize {
		log.Panicf("jass: dealt %d unique cards, want %d", len(seen), DeckSize)
	}
}

// SelectContract fixes the contract for the running hand, or passes the
// choice to the selector's partner when the contract is Schieben. The
// partner cannot pass again. Whoever fixes the contract becomes the
// declarer; the dealer leads the first trick regardless.
func (g *Game) SelectContract(seat int, contract Contract) error {
	if g.Phase != PhaseContractSelection {
		return fmt.Errorf("%w: cannot select a contract in phase %s", ErrWrongPhase, g.Phase)
	}
	if seat != g.Selector {
		return fmt.Errorf("%w: seat %d may not select the contract", ErrNotYourTurn, seat)
	}

	if contract == Schieben {
		if g.Shoved {
			return ErrCannotSchieben
		}
		g.Shoved = true
		g.Selector = PartnerOf(seat)
		g.TurnSeat = g.Selector
		return nil
	}
	if !contract.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidContract, contract)
	}

	g.Contract = contract
	g.Declarer = seat

	// Weis is fixed once per hand, from the dealt hands and the contract.
	for _, p := range g.Players {
		p.Weis = DetectWeis(p.Hand, contract)
	}

	g.CurrentTrick = NewTrick(g.Dealer)
	g.TurnSeat = g.Dealer
	g.Phase = PhasePlaying
	return nil
}

// LegalCards returns the cards the seat may legally play right now: any
// card when leading, otherwise the lead suit if held, otherwise the full
// hand. Returns nil outside the playing phase. Never returns an empty set
// for a seat that still holds cards.
func (g *Game) LegalCards(seat int) []Card {
	if g.Phase != PhasePlaying {
		return nil
	}
	p := g.Players[seat]

	lead, ok := g.CurrentTrick.LeadSuit()
	if !ok || !p.HasSuit(lead) {
		return append([]Card(nil), p.Hand...)
	}

	var legal []Card
	for _, c := range p.Hand {
		if c.Suit == lead {
			legal = append(legal, c)
		}
	}
	return legal
}

// PlayCard plays a card for the seat. After the fourth card the phase moves
// to resolving and the trick stays on the table until ResolveTrick is
// called, so callers can pause for display.
func (g *Game) PlayCard(seat int, card Card) error {
	if g.Phase != PhasePlaying {
		return fmt.Errorf("%w: cannot play a card in phase %s", ErrWrongPhase, g.Phase)
	}
	if seat != g.TurnSeat {
		return fmt.Errorf("%w: it is seat %d's turn", ErrNotYourTurn, g.TurnSeat)
	}
	p := g.Players[seat]
	if !p.HasCard(card) {
		return fmt.Errorf("%w: %s", ErrCardNotHeld, card)
	}
	if lead, ok := g.CurrentTrick.LeadSuit(); ok && card.Suit != lead && p.HasSuit(lead) {
		return fmt.Errorf("%w: %s led", ErrMustFollowSuit, lead)
	}

	p.RemoveCard(card)
	g.CurrentTrick.AddCard(card, seat)

	if g.CurrentTrick.Complete() {
		g.Phase = PhaseResolving
	} else {
		g.TurnSeat = (seat + 1) % 4
	}
	return nil
}

// ResolveTrick scores the completed trick, credits the winning team and
// hands the lead to the winner. After the ninth trick the hand is settled.
func (g *Game) ResolveTrick() error {
	if g.Phase != PhaseResolving {
		return fmt.Errorf("%w: no trick to resolve in phase %s", ErrWrongPhase, g.Phase)
	}

	winner := g.CurrentTrick.DetermineWinner(g.Contract)
	points := g.CurrentTrick.Points(g.Contract)
	if len(g.CompletedTricks) == HandSize-1 {
		points += g.Config.LastTrickBonus
	}

	g.TrickPoints[TeamOf(winner)] += points
	g.Players[winner].TricksWon++
	g.CompletedTricks = append(g.CompletedTricks, g.CurrentTrick)

	if len(g.CompletedTricks) == HandSize {
		g.settleHand()
		return nil
	}

	g.CurrentTrick = NewTrick(winner)
	g.TurnSeat = winner
	g.Phase = PhasePlaying
	return nil
}

// settleHand folds the hand into the match score: trick points plus awarded
// Weis, the match bonus for a team that took every trick, and the contract
// multiplier applied to the declaring team (or both teams, per config).
func (g *Game) settleHand() {
	for _, p := range g.Players {
		if len(p.Hand) != 0 {
			log.Panicf("jass: settling a hand while seat %d still holds %d cards", p.Seat, len(p.Hand))
		}
	}

	weis := ResolveTeamWeis(g.Players)

	var bonus, totals [2]int
	for t := 0; t < 2; t++ {
		if g.tricksWonByTeam(t) == HandSize {
			bonus[t] = g.Config.MatchBonus
		}
		totals[t] = g.TrickPoints[t] + weis[t] + bonus[t]
	}

	m := g.Contract.Multiplier()
	declTeam := TeamOf(g.Declarer)
	if g.Config.MultiplierBothTeams {
		totals[0] *= m
		totals[1] *= m
	} else {
		totals[declTeam] *= m
	}

	g.Scores[0] += totals[0]
	g.Scores[1] += totals[1]
	g.HandsPlayed++
	g.LastHand = &HandResult{
		Contract:    g.Contract,
		Declarer:    g.Declarer,
		TrickPoints: g.TrickPoints,
		WeisPoints:  weis,
		MatchBonus:  bonus,
		Totals:      totals,
	}

	g.CurrentTrick = nil
	g.TurnSeat = -1

	if g.Scores[0] >= g.Config.TargetScore || g.Scores[1] >= g.Config.TargetScore {
		g.Phase = PhaseMatchFinished
		switch {
		case g.Scores[0] > g.Scores[1]:
			g.WinnerTeam = 0
		case g.Scores[1] > g.Scores[0]:
			g.WinnerTeam = 1
		default:
			// Dead heat at the threshold: the defending team's points are
			// counted first, so it crosses first.
			g.WinnerTeam = 1 - declTeam
		}
		return
	}
	g.Phase = PhaseHandFinished
}

func (g *Game) tricksWonByTeam(team int) int {
	return g.Players[team].TricksWon + g.Players[team+2].TricksWon
}

// Forfeit ends the match immediately in favor of the given team, for use
// by callers when a seat abandons the match.
func (g *Game) Forfeit(winningTeam int) {
	if g.Phase == PhaseMatchFinished {
		return
	}
	g.Phase = PhaseMatchFinished
	g.WinnerTeam = winningTeam
	g.CurrentTrick = nil
	g.TurnSeat = -1
}
