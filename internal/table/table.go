// Package table owns running matches. A Table wraps one engine Game with a
// lock, pushes protocol messages to the connected clients, drives bot seats
// and timed transitions (trick display pause, next deal), and persists the
// result once the match ends. The engine itself stays free of all of this.
package table

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"schieber-game/internal/bot"
	"schieber-game/internal/database"
	"schieber-game/internal/jass"
	"schieber-game/internal/protocol"

	"github.com/google/uuid"
)

// MessageSender defines the function signature for sending messages back to
// clients. The Hub provides an implementation of this.
type MessageSender func(clientID string, message []byte)

const (
	botDelay      = 700 * time.Millisecond
	resolveDelay  = 1500 * time.Millisecond
	nextHandDelay = 3 * time.Second
)

// Seat binds one engine seat to a client or a bot strategy.
type Seat struct {
	ClientID string
	Name     string
	Strategy bot.Strategy // nil for human seats
}

func (s Seat) IsBot() bool { return s.Strategy != nil }

// Table is one running match.
type Table struct {
	ID    string
	Game  *jass.Game
	Seats [4]Seat

	mu          sync.Mutex
	sendMessage MessageSender
	db          *database.Service
	done        bool
}

// NewTable creates a table for the given seats and match configuration.
func NewTable(seats [4]Seat, cfg jass.Config, db *database.Service) *Table {
	return &Table{
		ID:    uuid.NewString(),
		Game:  jass.NewGame(cfg),
		Seats: seats,
		db:    db,
	}
}

// StartMatch announces the match and deals the first hand. Called once by
// the Hub, in its own goroutine.
func (t *Table) StartMatch(sender MessageSender) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sendMessage = sender
	log.Printf("Table %s: starting match.", t.ID)

	players := make([]protocol.PlayerInfo, 4)
	for i, s := range t.Seats {
		players[i] = protocol.PlayerInfo{
			ID:   s.ClientID,
			Name: s.Name,
			Seat: i,
			Team: jass.TeamOf(i),
			Bot:  s.IsBot(),
		}
	}
	startMsg, _ := protocol.NewMessage("match_start", protocol.MatchStartPayload{
		MatchID:     t.ID,
		Players:     players,
		TargetScore: t.Game.Config.TargetScore,
	})
	t.broadcast(startMsg)

	t.startHand()
}

// startHand deals the next hand and opens contract selection.
// Assumes lock is held.
func (t *Table) startHand() {
	if t.done {
		return
	}
	if err := t.Game.StartHand(); err != nil {
		log.Panicf("Table %s: start hand: %v", t.ID, err)
	}

	handMsg, _ := protocol.NewMessage("hand_start", protocol.HandStartPayload{
		HandNumber: t.Game.HandsPlayed + 1,
		Dealer:     t.Game.Dealer,
		Selector:   t.Game.Selector,
	})
	t.broadcast(handMsg)

	for seat, s := range t.Seats {
		if s.IsBot() {
			continue
		}
		dealMsg, _ := protocol.NewMessage("deal_hand", protocol.DealHandPayload{
			Hand: t.Game.Players[seat].Hand,
		})
		t.sendToSeat(seat, dealMsg)
	}

	t.broadcastState()
	t.afterTransition()
}

// HandlePlayerAction processes an incoming action from a human seat.
func (t *Table) HandlePlayerAction(clientID string, msg protocol.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		t.sendErrorToClient(clientID, "Match is already over.")
		return
	}
	seat := t.seatOf(clientID)
	if seat == -1 {
		log.Printf("Table %s: action from unknown client %s", t.ID, clientID)
		return
	}

	switch msg.Type {
	case "select_contract":
		var payload protocol.SelectContractPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			t.sendErrorToClient(clientID, "Invalid select_contract message.")
			return
		}
		if err := t.selectContract(seat, payload.Contract); err != nil {
			t.sendErrorToClient(clientID, err.Error())
		}

	case "play_card":
		var payload protocol.PlayCardPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			t.sendErrorToClient(clientID, "Invalid play_card message.")
			return
		}
		if err := t.playCard(seat, jass.Card{Suit: payload.Suit, Rank: payload.Rank}); err != nil {
			t.sendErrorToClient(clientID, err.Error())
		}

	default:
		log.Printf("Table %s: unhandled action %q from %s", t.ID, msg.Type, clientID)
	}
}

// selectContract applies a contract choice and broadcasts the outcome.
// Assumes lock is held.
func (t *Table) selectContract(seat int, contract jass.Contract) error {
	if err := t.Game.SelectContract(seat, contract); err != nil {
		return err
	}

	if contract == jass.Schieben {
		msg, _ := protocol.NewMessage("schieben", protocol.SchiebenPayload{
			From: seat,
			To:   t.Game.Selector,
		})
		t.broadcast(msg)
		t.afterTransition()
		return nil
	}

	msg, _ := protocol.NewMessage("contract_selected", protocol.ContractSelectedPayload{
		Contract: contract,
		Declarer: t.Game.Declarer,
		Schoben:  t.Game.Shoved,
	})
	t.broadcast(msg)

	declarations := map[int][]jass.Weis{}
	for i, p := range t.Game.Players {
		if len(p.Weis) > 0 {
			declarations[i] = p.Weis
		}
	}
	if len(declarations) > 0 {
		weisMsg, _ := protocol.NewMessage("weis_info", protocol.WeisInfoPayload{Declarations: declarations})
		t.broadcast(weisMsg)
	}

	t.broadcastState()
	t.afterTransition()
	return nil
}

// playCard applies a card play and broadcasts the outcome. Assumes lock is held.
func (t *Table) playCard(seat int, card jass.Card) error {
	if err := t.Game.PlayCard(seat, card); err != nil {
		return err
	}

	msg, _ := protocol.NewMessage("card_played", protocol.CardPlayedPayload{Seat: seat, Card: card})
	t.broadcast(msg)
	t.broadcastState()
	t.afterTransition()
	return nil
}

// afterTransition reacts to the phase the engine landed in: prompting the
// next actor, scheduling the trick resolution pause, dealing the next hand
// or finishing the match. Assumes lock is held.
func (t *Table) afterTransition() {
	switch t.Game.Phase {
	case jass.PhaseContractSelection:
		seat := t.Game.Selector
		if t.Seats[seat].IsBot() {
			t.scheduleBot(seat)
			return
		}
		msg, _ := protocol.NewMessage("your_turn", protocol.YourTurnPayload{Seat: seat})
		t.sendToSeat(seat, msg)

	case jass.PhasePlaying:
		seat := t.Game.TurnSeat
		if t.Seats[seat].IsBot() {
			t.scheduleBot(seat)
			return
		}
		msg, _ := protocol.NewMessage("your_turn", protocol.YourTurnPayload{
			Seat:       seat,
			ValidMoves: t.Game.LegalCards(seat),
		})
		t.sendToSeat(seat, msg)

	case jass.PhaseResolving:
		// Leave the full trick on the table for a moment before scoring it.
		time.AfterFunc(resolveDelay, t.resolveTrick)

	case jass.PhaseHandFinished:
		t.broadcastHandEnd()
		time.AfterFunc(nextHandDelay, func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.startHand()
		})

	case jass.PhaseMatchFinished:
		t.broadcastHandEnd()
		t.finishMatch()
	}
}

// resolveTrick runs the deferred trick resolution.
func (t *Table) resolveTrick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done || t.Game.Phase != jass.PhaseResolving {
		return
	}

	trick := t.Game.CurrentTrick
	if err := t.Game.ResolveTrick(); err != nil {
		log.Panicf("Table %s: resolve trick: %v", t.ID, err)
	}

	msg, _ := protocol.NewMessage("trick_end", protocol.TrickEndPayload{
		WinnerSeat: trick.WinnerSeat,
		Cards:      trick.Cards,
		Points:     trick.Points(t.Game.Contract),
	})
	t.broadcast(msg)
	t.broadcastState()
	t.afterTransition()
}

// scheduleBot lets the bot seat act after a short, human-feeling delay.
// Assumes lock is held when called.
func (t *Table) scheduleBot(seat int) {
	time.AfterFunc(botDelay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.done {
			return
		}
		t.botMove(seat)
	})
}

// botMove performs the bot's pending action through the same paths a human
// action takes. Assumes lock is held.
func (t *Table) botMove(seat int) {
	strategy := t.Seats[seat].Strategy
	g := t.Game

	switch {
	case g.Phase == jass.PhaseContractSelection && g.Selector == seat:
		contract := strategy.ChooseContract(g.Players[seat].Hand, !g.Shoved)
		if err := t.selectContract(seat, contract); err != nil {
			log.Printf("Table %s: bot seat %d contract %q rejected (%v), falling back", t.ID, seat, contract, err)
			if err := t.selectContract(seat, jass.Contracts[0]); err != nil {
				log.Panicf("Table %s: bot fallback contract rejected: %v", t.ID, err)
			}
		}

	case g.Phase == jass.PhasePlaying && g.TurnSeat == seat:
		legal := g.LegalCards(seat)
		if len(legal) == 0 {
			log.Panicf("Table %s: bot seat %d has no legal cards", t.ID, seat)
		}
		card := strategy.ChooseCard(g, seat, legal)
		if err := t.playCard(seat, card); err != nil {
			log.Printf("Table %s: bot seat %d card %s rejected (%v), falling back", t.ID, seat, card, err)
			if err := t.playCard(seat, legal[0]); err != nil {
				log.Panicf("Table %s: bot fallback card rejected: %v", t.ID, err)
			}
		}
	}
}

// finishMatch announces the result and persists it. Assumes lock is held.
func (t *Table) finishMatch() {
	t.done = true
	g := t.Game

	msg, _ := protocol.NewMessage("match_over", protocol.MatchOverPayload{
		WinnerTeam:   g.WinnerTeam,
		FinalScoreT1: g.Scores[0],
		FinalScoreT2: g.Scores[1],
	})
	t.broadcast(msg)
	log.Printf("Table %s: match over, team %d wins %d:%d after %d hands.",
		t.ID, g.WinnerTeam, g.Scores[0], g.Scores[1], g.HandsPlayed)

	t.persistResult()
}

func (t *Table) persistResult() {
	if t.db == nil {
		return
	}
	g := t.Game
	err := t.db.Insert(database.MatchResult{
		ID:          t.ID,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Player1:     t.Seats[0].Name,
		Player2:     t.Seats[1].Name,
		Player3:     t.Seats[2].Name,
		Player4:     t.Seats[3].Name,
		Team1Score:  g.Scores[0],
		Team2Score:  g.Scores[1],
		WinnerTeam:  g.WinnerTeam,
		TargetScore: g.Config.TargetScore,
		HandsPlayed: g.HandsPlayed,
	})
	if err != nil {
		log.Printf("Table %s: failed to persist result: %v", t.ID, err)
	}
}

// HandlePlayerDisconnect forfeits the match when a human seat leaves.
func (t *Table) HandlePlayerDisconnect(clientID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return
	}
	seat := t.seatOf(clientID)
	if seat == -1 {
		return
	}

	log.Printf("Table %s: player %s (seat %d) disconnected, forfeiting.", t.ID, clientID, seat)
	leftMsg, _ := protocol.NewMessage("player_left", protocol.PlayerLeftPayload{PlayerID: clientID})
	t.broadcast(leftMsg)

	t.Game.Forfeit(1 - jass.TeamOf(seat))
	t.finishMatch()
}

// --- Messaging helpers (assume lock is held) ---

func (t *Table) broadcast(message []byte) {
	if t.sendMessage == nil {
		return
	}
	for _, s := range t.Seats {
		if !s.IsBot() {
			t.sendMessage(s.ClientID, message)
		}
	}
}

func (t *Table) sendToSeat(seat int, message []byte) {
	if t.sendMessage == nil || t.Seats[seat].IsBot() {
		return
	}
	t.sendMessage(t.Seats[seat].ClientID, message)
}

func (t *Table) sendErrorToClient(clientID string, errorMsg string) {
	if t.sendMessage == nil {
		return
	}
	msg, err := protocol.NewMessage("error", protocol.ErrorPayload{Message: errorMsg})
	if err != nil {
		log.Printf("Table %s: error creating error message: %v", t.ID, err)
		return
	}
	t.sendMessage(clientID, msg)
}

func (t *Table) broadcastState() {
	g := t.Game
	var trick []jass.PlayedCard
	if g.CurrentTrick != nil {
		trick = g.CurrentTrick.Cards
	}
	msg, _ := protocol.NewMessage("table_state", protocol.TableStatePayload{
		Phase:       g.Phase,
		TurnSeat:    g.TurnSeat,
		Dealer:      g.Dealer,
		Contract:    g.Contract,
		Trick:       trick,
		Team1Score:  g.Scores[0],
		Team2Score:  g.Scores[1],
		HandsPlayed: g.HandsPlayed,
	})
	t.broadcast(msg)
}

func (t *Table) broadcastHandEnd() {
	g := t.Game
	msg, _ := protocol.NewMessage("hand_end", protocol.HandEndPayload{
		Result:      g.LastHand,
		Team1Total:  g.Scores[0],
		Team2Total:  g.Scores[1],
		HandsPlayed: g.HandsPlayed,
	})
	t.broadcast(msg)
}

// seatOf finds the seat index of a client. Returns -1 if not seated here.
func (t *Table) seatOf(clientID string) int {
	for i, s := range t.Seats {
		if !s.IsBot() && s.ClientID == clientID {
			return i
		}
	}
	return -1
}
