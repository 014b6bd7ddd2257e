package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/copapymes/league-system/live"
	"github.com/copapymes/league-system/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking is delegated to the CORS layer; websocket
		// connections are read-only broadcasts.
		return true
	},
}

type WebSocketHandler struct {
	hub               *live.Hub
	tournamentService services.TournamentService
	logger            *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, ts services.TournamentService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, tournamentService: ts, logger: logger}
}

// ServeWs handles GET /ws/tournaments/{tournamentID}: it upgrades the
// connection and subscribes the client to that tournament's event room.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if _, err := h.tournamentService.GetByID(r.Context(), tournamentID); err != nil {
		if errors.Is(err, services.ErrTournamentNotFound) {
			notFoundResponse(w, err)
			return
		}
		serverErrorResponse(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		h.logger.Error("websocket upgrade failed",
			slog.Int("tournament_id", tournamentID),
			slog.Any("error", err),
		)
		return
	}

	client := live.NewClient(h.hub, conn, live.RoomForTournament(tournamentID))
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	h.logger.Info("websocket client connected", slog.Int("tournament_id", tournamentID))
}
