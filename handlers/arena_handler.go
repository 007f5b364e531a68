package handlers

import (
	"net/http"

	"github.com/Dosada05/pokearena/middleware"
	"github.com/Dosada05/pokearena/models"
	"github.com/Dosada05/pokearena/services"
)

type ArenaHandler struct {
	arenaService services.ArenaService
}

func NewArenaHandler(as services.ArenaService) *ArenaHandler {
	return &ArenaHandler{arenaService: as}
}

type completeMatchRequest struct {
	// WinnerID 0 records a draw.
	WinnerID     int                   `json:"winner_id"`
	BattleResult *models.BattleSummary `json:"battle_result,omitempty"`
}

// JoinQueue godoc
// @Summary Join the matchmaking queue
// @Tags arena
// @Accept json
// @Produce json
// @Param input body services.JoinQueueInput true "Queue options"
// @Success 200 {object} map[string]interface{} "Queue result"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string "Already queued or in a match"
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /api/arena/queue [post]
func (h *ArenaHandler) JoinQueue(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.JoinQueueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.arenaService.JoinQueue(r.Context(), currentUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"queue": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LeaveQueue godoc
// @Summary Leave the matchmaking queue
// @Tags arena
// @Success 204
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /api/arena/queue [delete]
func (h *ArenaHandler) LeaveQueue(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := h.arenaService.LeaveQueue(r.Context(), currentUserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartBattle godoc
// @Summary Simulate the battle for a ready match
// @Tags arena
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} map[string]interface{} "Battle id and log"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /api/arena/matches/{matchID}/start [post]
func (h *ArenaHandler) StartBattle(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	result, err := h.arenaService.StartBattle(r.Context(), matchID, currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"battle": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CompleteMatch godoc
// @Summary Settle a finished match
// @Tags arena
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body completeMatchRequest true "Winner, 0 for a draw"
// @Success 200 {object} map[string]interface{} "Match rewards"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /api/arena/matches/{matchID}/complete [post]
func (h *ArenaHandler) CompleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input completeMatchRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rewards, err := h.arenaService.CompleteMatch(r.Context(), matchID, currentUserID, input.WinnerID, input.BattleResult)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rewards": rewards}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Rankings godoc
// @Summary Arena leaderboard
// @Tags arena
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/arena/rankings [get]
func (h *ArenaHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", services.DefaultRankingsLimit)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rankings, err := h.arenaService.GetRankings(r.Context(), limit, offset)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rankings": rankings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UserStats godoc
// @Summary Arena rating and recent matches of a user
// @Tags arena
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/arena/stats/{userID} [get]
func (h *ArenaHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.arenaService.GetUserStats(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Me godoc
// @Summary Queue state, active match and rating of the caller
// @Tags arena
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /api/arena/me [get]
func (h *ArenaHandler) Me(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	status, err := h.arenaService.GetStatus(r.Context(), currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"arena": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
