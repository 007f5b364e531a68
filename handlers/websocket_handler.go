package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/pokearena/brackets"
	"github.com/Dosada05/pokearena/services"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const snapshotWriteWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS layer for HTTP; sockets accept any.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub               *brackets.Hub
	tournamentService services.TournamentService
}

func NewWebSocketHandler(hub *brackets.Hub, ts services.TournamentService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:               hub,
		tournamentService: ts,
	}
}

// ServeTournamentWs subscribes to /ws/tournaments/{tournamentID}. The current
// bracket is sent first so late joiners do not wait for the next update.
func (h *WebSocketHandler) ServeTournamentWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.tournamentService.GetTournamentBracket(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	room := brackets.TournamentRoom(tournamentID)
	snapshot := brackets.WebSocketMessage{Type: brackets.EventBracketUpdated, Payload: bracket, RoomID: room}
	h.serve(w, r, room, &snapshot)
}

// ServeArenaMatchWs subscribes to /ws/arena/matches/{matchID}.
func (h *WebSocketHandler) ServeArenaMatchWs(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.serve(w, r, brackets.ArenaMatchRoom(matchID), nil)
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, room string, snapshot *brackets.WebSocketMessage) {
	logger := zerolog.Ctx(r.Context()).With().Str("room", room).Logger()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	// pumps are not running yet, so writing directly is safe
	if snapshot != nil {
		conn.SetWriteDeadline(time.Now().Add(snapshotWriteWait))
		if err := conn.WriteJSON(snapshot); err != nil {
			logger.Warn().Err(err).Msg("failed to send initial snapshot")
			conn.Close()
			return
		}
	}

	client := brackets.NewClient(h.hub, conn, room)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	logger.Debug().Msg("websocket client connected")
}
