package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"sync"

	"schieber-game/internal/bot"
	"schieber-game/internal/database"
	"schieber-game/internal/jass"
	"schieber-game/internal/protocol"
	"schieber-game/internal/table"

	"github.com/google/uuid"
)

// clientMessage is a helper struct to pass messages along with the client reference.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

const tableCodeLength = 5 // Length of the unique table code

// lobby is a table that has been created but not started yet.
type lobby struct {
	clients     []*Client
	targetScore int
}

// Hub manages active WebSocket connections, lobbies, and running tables.
type Hub struct {
	clients        map[*Client]bool
	lobbies        map[string]*lobby       // Map table code to waiting lobby
	tables         map[string]*table.Table // Map table code to running table
	clientToTable  map[*Client]string      // Map client to table code (lobby or running)
	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client
	clientMu       sync.RWMutex
	lobbyMu        sync.RWMutex
	tableMu        sync.RWMutex
	rng            *rand.Rand
	db             *database.Service
}

// NewHub creates a new Hub instance.
func NewHub(db *database.Service) *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		lobbies:        make(map[string]*lobby),
		tables:         make(map[string]*table.Table),
		clientToTable:  make(map[*Client]string),
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		rng:            rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		db:             db,
	}
}

// generateTableCode creates a unique alphanumeric table code.
func (h *Hub) generateTableCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for {
		var sb strings.Builder
		for i := 0; i < tableCodeLength; i++ {
			sb.WriteByte(letters[h.rng.IntN(len(letters))])
		}
		code := sb.String()

		h.lobbyMu.RLock()
		_, lobbyExists := h.lobbies[code]
		h.lobbyMu.RUnlock()

		h.tableMu.RLock()
		_, tableExists := h.tables[code]
		h.tableMu.RUnlock()

		if !lobbyExists && !tableExists {
			return code
		}
		log.Printf("Generated table code %s collided, retrying...", code)
	}
}

// Run starts the Hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			client.ID = uuid.NewString() // Assign a unique ID upon registration
			log.Printf("Client %s (%s) connected", client.ID, client.conn.RemoteAddr())
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()

		case client := <-h.unregister:
			h.clientMu.Lock()
			tableCode, seated := h.clientToTable[client]
			_, clientExists := h.clients[client]

			if clientExists {
				delete(h.clients, client)
				delete(h.clientToTable, client)
				close(client.send)
				log.Printf("Client %s (%s) disconnected", client.ID, client.Name)
			}
			h.clientMu.Unlock()

			if seated {
				h.handleSeatedDisconnect(client, tableCode)
			} else if clientExists {
				log.Printf("Client %s disconnected before joining a table.", client.ID)
			}

		case clientMsg := <-h.processMessage:
			h.handleMessage(clientMsg.client, clientMsg.message)
		}
	}
}

// handleSeatedDisconnect removes a disconnected client from its lobby, or
// notifies the running table so it can forfeit.
func (h *Hub) handleSeatedDisconnect(client *Client, tableCode string) {
	h.lobbyMu.Lock()
	lob, lobbyExists := h.lobbies[tableCode]
	if lobbyExists {
		remaining := []*Client{}
		for _, c := range lob.clients {
			if c != client {
				remaining = append(remaining, c)
			}
		}
		if len(remaining) > 0 {
			lob.clients = remaining
			h.lobbyMu.Unlock()
			log.Printf("Client %s removed from lobby %s.", client.ID, tableCode)
			h.broadcastLobbyUpdate(tableCode)
			return
		}
		delete(h.lobbies, tableCode)
		h.lobbyMu.Unlock()
		log.Printf("Client %s left lobby %s. Lobby deleted.", client.ID, tableCode)
		return
	}
	h.lobbyMu.Unlock()

	h.tableMu.RLock()
	tbl, tableExists := h.tables[tableCode]
	h.tableMu.RUnlock()

	if tableExists {
		log.Printf("Client %s was at table %s. Notifying table.", client.ID, tableCode)
		go tbl.HandlePlayerDisconnect(client.ID) // Run in goroutine to avoid blocking hub
	} else {
		log.Printf("Client %s disconnected but was mapped to non-existent table code %s", client.ID, tableCode)
	}
}

// handleMessage processes a message received from a client.
func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	switch msg.Type {
	case "create_table":
		h.handleCreateTable(client, msg)
	case "join_table":
		h.handleJoinTable(client, msg)
	case "start_table":
		h.handleStartTable(client)
	case "select_contract", "play_card":
		h.handleTableAction(client, msg)
	case "ping":
		pongMsg, _ := protocol.NewMessage("pong", nil)
		client.send <- pongMsg
	default:
		log.Printf("Received unknown message type '%s' from client %s (%s)", msg.Type, client.ID, client.Name)
		h.sendErrorToClient(client, "Unknown message type.")
	}
}

// handleCreateTable handles a request to open a new table lobby.
func (h *Hub) handleCreateTable(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, alreadySeated := h.clientToTable[client]
	h.clientMu.RUnlock()
	if alreadySeated {
		h.sendErrorToClient(client, "Already at a table.")
		return
	}

	var payload protocol.CreateTablePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("Error unmarshalling create_table payload from client %s: %v", client.ID, err)
		h.sendErrorToClient(client, "Invalid create_table message format.")
		return
	}
	if payload.Name == "" {
		h.sendErrorToClient(client, "Name cannot be empty.")
		return
	}
	if payload.TargetScore < 0 {
		h.sendErrorToClient(client, "Invalid target score.")
		return
	}

	tableCode := h.generateTableCode()

	h.clientMu.Lock()
	client.Name = payload.Name
	h.clientToTable[client] = tableCode
	h.clientMu.Unlock()

	h.lobbyMu.Lock()
	h.lobbies[tableCode] = &lobby{clients: []*Client{client}, targetScore: payload.TargetScore}
	h.lobbyMu.Unlock()

	log.Printf("Client %s (%s) created table %s", client.ID, client.Name, tableCode)

	createdMsg, _ := protocol.NewMessage("table_created", protocol.TableCreatedPayload{TableCode: tableCode})
	h.sendMessageToClient(client.ID, createdMsg)

	h.broadcastLobbyUpdate(tableCode)
}

// handleJoinTable handles a request to join an existing table lobby.
func (h *Hub) handleJoinTable(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, alreadySeated := h.clientToTable[client]
	h.clientMu.RUnlock()
	if alreadySeated {
		h.sendJoinError(client, "Already at a table.")
		return
	}

	var payload protocol.JoinTablePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("Error unmarshalling join_table payload from client %s: %v", client.ID, err)
		h.sendJoinError(client, "Invalid join_table message format.")
		return
	}
	if payload.Name == "" {
		h.sendJoinError(client, "Name cannot be empty.")
		return
	}
	if payload.TableCode == "" {
		h.sendJoinError(client, "Table code cannot be empty.")
		return
	}
	tableCode := strings.ToUpper(payload.TableCode)

	h.lobbyMu.Lock()
	lob, lobbyExists := h.lobbies[tableCode]
	if !lobbyExists {
		h.lobbyMu.Unlock()
		h.sendJoinError(client, "Table code not found.")
		return
	}
	if len(lob.clients) >= 4 {
		h.lobbyMu.Unlock()
		h.sendJoinError(client, "Table is full.")
		return
	}
	for _, existing := range lob.clients {
		if existing.Name == payload.Name {
			h.lobbyMu.Unlock()
			h.sendJoinError(client, "Name already taken at this table.")
			return
		}
	}

	client.Name = payload.Name
	lob.clients = append(lob.clients, client)
	full := len(lob.clients) == 4
	h.lobbyMu.Unlock()

	h.clientMu.Lock()
	h.clientToTable[client] = tableCode
	h.clientMu.Unlock()

	log.Printf("Client %s (%s) joined table %s.", client.ID, client.Name, tableCode)
	h.broadcastLobbyUpdate(tableCode)

	// A full table starts immediately; short-handed lobbies wait for the
	// creator's start_table, which fills empty seats with bots.
	if full {
		h.startTable(tableCode)
	}
}

// handleStartTable starts a lobby before it is full; empty seats are taken
// by bots. Only the creator (first seat) may start.
func (h *Hub) handleStartTable(client *Client) {
	h.clientMu.RLock()
	tableCode, seated := h.clientToTable[client]
	h.clientMu.RUnlock()
	if !seated {
		h.sendErrorToClient(client, "You are not at a table.")
		return
	}

	h.lobbyMu.RLock()
	lob, lobbyExists := h.lobbies[tableCode]
	isCreator := lobbyExists && len(lob.clients) > 0 && lob.clients[0] == client
	h.lobbyMu.RUnlock()

	if !lobbyExists {
		h.sendErrorToClient(client, "Table already started.")
		return
	}
	if !isCreator {
		h.sendErrorToClient(client, "Only the table creator can start the match.")
		return
	}

	h.startTable(tableCode)
}

// botNames seed the bot seats; suffixed when a human took the name already.
var botNames = []string{"Vreni", "Ruedi", "Heidi", "Sepp"}

// startTable converts a lobby into a running table, filling empty seats
// with bot strategies.
func (h *Hub) startTable(tableCode string) {
	h.tableMu.Lock()
	h.lobbyMu.Lock()

	lob, lobbyExists := h.lobbies[tableCode]
	if !lobbyExists || len(lob.clients) == 0 {
		h.lobbyMu.Unlock()
		h.tableMu.Unlock()
		log.Printf("Error: lobby %s vanished before table start.", tableCode)
		return
	}

	var seats [4]table.Seat
	taken := map[string]bool{}
	for _, c := range lob.clients {
		taken[c.Name] = true
	}
	for i := 0; i < 4; i++ {
		if i < len(lob.clients) {
			c := lob.clients[i]
			seats[i] = table.Seat{ClientID: c.ID, Name: c.Name}
			continue
		}
		name := botNames[i]
		if taken[name] {
			name = fmt.Sprintf("%s (Bot %d)", name, i)
		}
		seats[i] = table.Seat{Name: name, Strategy: bot.NewGreedy()}
	}

	tbl := table.NewTable(seats, jass.Config{TargetScore: lob.targetScore}, h.db)
	h.tables[tableCode] = tbl
	delete(h.lobbies, tableCode)

	h.lobbyMu.Unlock()
	h.tableMu.Unlock()

	log.Printf("Table %s started with match ID %s.", tableCode, tbl.ID)
	go tbl.StartMatch(h.sendMessageToClient)
}

// handleTableAction forwards contract and card actions to the running table.
func (h *Hub) handleTableAction(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	tableCode, seated := h.clientToTable[client]
	h.clientMu.RUnlock()

	if !seated {
		h.sendErrorToClient(client, "You are not at an active table.")
		return
	}

	h.tableMu.RLock()
	tbl, tableExists := h.tables[tableCode]
	h.tableMu.RUnlock()

	if !tableExists {
		log.Printf("Received '%s' from client %s for table %s, but no running table found.", msg.Type, client.ID, tableCode)
		h.sendErrorToClient(client, "Table not found or not active.")
		return
	}

	tbl.HandlePlayerAction(client.ID, msg)
}

// sendMessageToClient allows the table logic to send messages back via the
// hub/client. This is passed as a callback to the table instance.
func (h *Hub) sendMessageToClient(clientID string, message []byte) {
	h.clientMu.RLock()
	var targetClient *Client
	for client := range h.clients {
		if client.ID == clientID {
			targetClient = client
			break
		}
	}
	h.clientMu.RUnlock()

	if targetClient == nil {
		log.Printf("Could not find client %s to send message (already disconnected?).", clientID)
		return
	}

	// Non-blocking send; a blocked channel means the client is gone.
	select {
	case targetClient.send <- message:
	default:
		log.Printf("Failed to send message to client %s (channel full or closed), initiating cleanup.", clientID)
		go func() {
			h.clientMu.RLock()
			_, stillConnected := h.clients[targetClient]
			h.clientMu.RUnlock()
			if stillConnected {
				h.unregister <- targetClient
			}
		}()
	}
}

// broadcastLobbyUpdate sends the current list of players in the lobby.
func (h *Hub) broadcastLobbyUpdate(tableCode string) {
	h.lobbyMu.RLock()
	lob, exists := h.lobbies[tableCode]
	if !exists {
		h.lobbyMu.RUnlock()
		log.Printf("Warning: tried to broadcast to non-existent lobby %s", tableCode)
		return
	}
	clients := make([]*Client, len(lob.clients))
	copy(clients, lob.clients)
	h.lobbyMu.RUnlock()

	playerInfos := make([]protocol.PlayerInfo, len(clients))
	for i, c := range clients {
		playerInfos[i] = protocol.PlayerInfo{ID: c.ID, Name: c.Name, Seat: i, Team: i % 2}
	}
	msgBytes, err := protocol.NewMessage("lobby_update", protocol.LobbyUpdatePayload{
		TableCode: tableCode,
		Players:   playerInfos,
	})
	if err != nil {
		log.Printf("Error creating lobby_update message for lobby %s: %v", tableCode, err)
		return
	}
	for _, c := range clients {
		h.sendMessageToClient(c.ID, msgBytes)
	}
}

// sendErrorToClient sends a generic error message to a specific client.
func (h *Hub) sendErrorToClient(client *Client, errorMsg string) {
	msgBytes, err := protocol.NewMessage("error", protocol.ErrorPayload{Message: errorMsg})
	if err != nil {
		log.Printf("Error creating error message for client %s: %v", client.ID, err)
		return
	}
	h.sendMessageToClient(client.ID, msgBytes)
}

// sendJoinError sends a specific join error message to a client.
func (h *Hub) sendJoinError(client *Client, errorMsg string) {
	msgBytes, err := protocol.NewMessage("join_error", protocol.JoinErrorPayload{Message: errorMsg})
	if err != nil {
		log.Printf("Error creating join_error message for client %s: %v", client.ID, err)
		return
	}
	h.sendMessageToClient(client.ID, msgBytes)
}
