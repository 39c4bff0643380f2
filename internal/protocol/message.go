package protocol

import (
	"encoding/json"

	"schieber-game/internal/jass"
)

// Message represents a generic WebSocket message structure.
type Message struct {
	Type    string          `json:"type"`              // Type of the message (e.g., "join_table", "play_card")
	Payload json.RawMessage `json:"payload,omitempty"` // Raw JSON payload, allows flexible structures
}

// --- Client -> Server Payload Structs ---

type CreateTablePayload struct {
	Name        string `json:"name"`
	TargetScore int    `json:"target_score"`
}

type JoinTablePayload struct {
	Name      string `json:"name"`
	TableCode string `json:"table_code"`
}

// SelectContractPayload carries the selector's choice; "schieben" passes
// the choice to the partner.
type SelectContractPayload struct {
	Contract jass.Contract `json:"contract"`
}

type PlayCardPayload struct {
	Suit jass.Suit `json:"suit"`
	Rank jass.Rank `json:"rank"`
}

// --- Server -> Client Payload Structs ---

type TableCreatedPayload struct {
	TableCode string `json:"table_code"`
}

type LobbyUpdatePayload struct {
	TableCode string       `json:"table_code"`
	Players   []PlayerInfo `json:"players"`
}

type JoinErrorPayload struct {
	Message string `json:"message"`
}

type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat int    `json:"seat"`
	Team int    `json:"team"`
	Bot  bool   `json:"bot"`
}

type MatchStartPayload struct {
	MatchID     string       `json:"match_id"`
	Players     []PlayerInfo `json:"players"`
	TargetScore int          `json:"target_score"`
}

type HandStartPayload struct {
	HandNumber int `json:"hand_number"`
	Dealer     int `json:"dealer"`
	Selector   int `json:"selector"`
}

// DealHandPayload is sent per player; other hands are never included.
type DealHandPayload struct {
	Hand []jass.Card `json:"hand"`
}

type ContractSelectedPayload struct {
	Contract jass.Contract `json:"contract"`
	Declarer int           `json:"declarer"`
	Schoben  bool          `json:"schoben"` // the choice was passed once
}

type SchiebenPayload struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type YourTurnPayload struct {
	Seat       int         `json:"seat"`
	ValidMoves []jass.Card `json:"valid_moves,omitempty"`
}

type CardPlayedPayload struct {
	Seat int       `json:"seat"`
	Card jass.Card `json:"card"`
}

type TrickEndPayload struct {
	WinnerSeat int               `json:"winner_seat"`
	Cards      []jass.PlayedCard `json:"cards"`
	Points     int               `json:"points"`
}

// WeisInfoPayload announces the detected declarations once the contract is
// fixed; declarations are public from that point on.
type WeisInfoPayload struct {
	Declarations map[int][]jass.Weis `json:"declarations"`
}

type HandEndPayload struct {
	Result      *jass.HandResult `json:"result"`
	Team1Total  int              `json:"team1_total"`
	Team2Total  int              `json:"team2_total"`
	HandsPlayed int              `json:"hands_played"`
}

type MatchOverPayload struct {
	WinnerTeam   int `json:"winner_team"`
	FinalScoreT1 int `json:"final_score_t1"`
	FinalScoreT2 int `json:"final_score_t2"`
}

type TableStatePayload struct {
	Phase       jass.Phase        `json:"phase"`
	TurnSeat    int               `json:"turn_seat"`
	Dealer      int               `json:"dealer"`
	Contract    jass.Contract     `json:"contract,omitempty"`
	Trick       []jass.PlayedCard `json:"trick"`
	Team1Score  int               `json:"team1_score"`
	Team2Score  int               `json:"team2_score"`
	HandsPlayed int               `json:"hands_played"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
}

// NewMessage creates a JSON-encoded message with the given payload.
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	if payload == nil {
		return json.Marshal(Message{Type: msgType})
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: msgType, Payload: payloadBytes})
}
