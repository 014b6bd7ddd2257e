package live

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// Event types pushed to tournament rooms.
const (
	EventFixtureGenerated = "FIXTURE_GENERATED"
	EventMatchUpdated     = "MATCH_UPDATED"
	EventTournamentStatus = "TOURNAMENT_STATUS"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message is the wire format for room broadcasts.
type Message struct {
	Type         string `json:"type"`
	Payload      any    `json:"payload"`
	TournamentID string `json:"tournament_id,omitempty"`
}

// RoomForTournament maps a tournament ID to its room key. Broadcasts use the
// same key, so subscribers and publishers stay in sync.
func RoomForTournament(tournamentID int) string {
	return strconv.Itoa(tournamentID)
}

// Broadcaster is the narrow interface services use to push events.
type Broadcaster interface {
	BroadcastToTournament(tournamentID string, message any)
}

// Hub tracks websocket clients grouped into per-tournament rooms.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	rooms  map[string]map[*Client]bool
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.logger.Debug("websocket client joined room",
				slog.String("room", client.Room),
				slog.Int("clients", len(h.rooms[client.Room])),
			)
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.Room]; ok {
				if _, okClient := room[client]; okClient {
					client.closeSend()
					delete(room, client)
					if len(room) == 0 {
						delete(h.rooms, client.Room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToTournament sends a message to every client watching a tournament.
// Clients with a full send buffer are skipped, not blocked on.
func (h *Hub) BroadcastToTournament(tournamentID string, message any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[tournamentID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal websocket message",
			slog.String("room", tournamentID),
			slog.Any("error", err),
		)
		return
	}

	for client := range room {
		client.trySend(data)
	}
}
