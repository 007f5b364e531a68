package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/pokearena/models"
	"github.com/Dosada05/pokearena/services"
	"github.com/go-chi/chi/v5"
)

func newArenaRouter(svc services.ArenaService, userID int) chi.Router {
	h := NewArenaHandler(svc)
	r := chi.NewRouter()
	r.Get("/api/arena/rankings", h.Rankings)
	r.Group(func(r chi.Router) {
		if userID > 0 {
			r.Use(asUser(userID))
		}
		r.Post("/api/arena/queue", h.JoinQueue)
		r.Delete("/api/arena/queue", h.LeaveQueue)
		r.Post("/api/arena/matches/{matchID}/start", h.StartBattle)
		r.Post("/api/arena/matches/{matchID}/complete", h.CompleteMatch)
		r.Get("/api/arena/stats/{userID}", h.UserStats)
		r.Get("/api/arena/me", h.Me)
	})
	return r
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var env map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestJoinQueueHandler(t *testing.T) {
	var gotUser int
	var gotInput services.JoinQueueInput
	svc := &fakeArenaService{
		joinFn: func(_ context.Context, userID int, input services.JoinQueueInput) (*services.QueueResult, error) {
			gotUser, gotInput = userID, input
			return &services.QueueResult{Status: services.QueueStatusQueued, MatchID: 9, Rating: 1200}, nil
		},
	}

	rec := do(t, newArenaRouter(svc, 7), http.MethodPost, "/api/arena/queue", `{"mode":"RANKED","rating_range":150}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if gotUser != 7 || gotInput.Mode != models.ModeRanked || gotInput.RatingRange != 150 {
		t.Fatalf("service got user %d input %+v", gotUser, gotInput)
	}

	var result services.QueueResult
	if err := json.Unmarshal(decodeBody(t, rec)["queue"], &result); err != nil {
		t.Fatal(err)
	}
	if result.Status != services.QueueStatusQueued || result.MatchID != 9 {
		t.Fatalf("unexpected queue payload %+v", result)
	}
}

func TestJoinQueueHandlerRejections(t *testing.T) {
	svc := &fakeArenaService{
		joinFn: func(context.Context, int, services.JoinQueueInput) (*services.QueueResult, error) {
			return nil, services.ErrAlreadyQueued
		},
	}

	tests := []struct {
		name   string
		userID int
		body   string
		want   int
	}{
		{"anonymous", 0, `{"mode":"RANKED"}`, http.StatusUnauthorized},
		{"unknown field", 7, `{"mode":"RANKED","color":"red"}`, http.StatusBadRequest},
		{"empty body", 7, ``, http.StatusBadRequest},
		{"two values", 7, `{"mode":"RANKED"}{}`, http.StatusBadRequest},
		{"already queued", 7, `{"mode":"RANKED"}`, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newArenaRouter(svc, tt.userID), http.MethodPost, "/api/arena/queue", tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if _, ok := decodeBody(t, rec)["error"]; !ok {
				t.Fatal("error responses carry an error key")
			}
		})
	}
}

func TestLeaveQueueHandler(t *testing.T) {
	called := false
	svc := &fakeArenaService{leaveFn: func(_ context.Context, userID int) error {
		called = userID == 3
		return nil
	}}
	rec := do(t, newArenaRouter(svc, 3), http.MethodDelete, "/api/arena/queue", "")
	if rec.Code != http.StatusNoContent || !called {
		t.Fatalf("status = %d, called = %v", rec.Code, called)
	}
}

func TestStartBattleHandler(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{"ok", "/api/arena/matches/12/start", nil, http.StatusOK},
		{"bad id", "/api/arena/matches/abc/start", nil, http.StatusBadRequest},
		{"negative id", "/api/arena/matches/-1/start", nil, http.StatusBadRequest},
		{"not a player", "/api/arena/matches/12/start", services.ErrForbiddenOperation, http.StatusForbidden},
		{"missing", "/api/arena/matches/12/start", services.ErrMatchNotFound, http.StatusNotFound},
		{"no opponent", "/api/arena/matches/12/start", services.ErrMatchNotReady, http.StatusBadRequest},
		{"already started", "/api/arena/matches/12/start", services.ErrInvalidStatusTransition, http.StatusConflict},
		{"uneven teams", "/api/arena/matches/12/start", services.ErrTeamSizeMismatch, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeArenaService{startFn: func(_ context.Context, matchID, userID int) (*services.StartBattleResult, error) {
				if matchID != 12 || userID != 5 {
					t.Fatalf("service got match %d user %d", matchID, userID)
				}
				if tt.err != nil {
					return nil, tt.err
				}
				return &services.StartBattleResult{BattleID: "b1", BattleData: &models.BattleSummary{Winner: models.WinnerPlayer1}}, nil
			}}
			rec := do(t, newArenaRouter(svc, 5), http.MethodPost, tt.target, "")
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestCompleteMatchHandlerPassesWinnerAndCaller(t *testing.T) {
	var gotMatch, gotUser, gotWinner int
	svc := &fakeArenaService{completeFn: func(_ context.Context, matchID, userID, winnerID int, _ *models.BattleSummary) (*models.MatchRewards, error) {
		gotMatch, gotUser, gotWinner = matchID, userID, winnerID
		return &models.MatchRewards{Draw: winnerID == 0}, nil
	}}

	rec := do(t, newArenaRouter(svc, 4), http.MethodPost, "/api/arena/matches/30/complete", `{"winner_id":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if gotMatch != 30 || gotUser != 4 || gotWinner != 0 {
		t.Fatalf("service got match %d user %d winner %d", gotMatch, gotUser, gotWinner)
	}
	var rewards models.MatchRewards
	if err := json.Unmarshal(decodeBody(t, rec)["rewards"], &rewards); err != nil {
		t.Fatal(err)
	}
	if !rewards.Draw {
		t.Fatal("expected the draw flag to round-trip")
	}
}

func TestCompleteMatchHandlerWrappedValidationError(t *testing.T) {
	svc := &fakeArenaService{completeFn: func(context.Context, int, int, int, *models.BattleSummary) (*models.MatchRewards, error) {
		return nil, fmt.Errorf("settle: %w", services.ErrInvalidWinner)
	}}
	rec := do(t, newArenaRouter(svc, 4), http.MethodPost, "/api/arena/matches/30/complete", `{"winner_id":99}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRankingsHandlerQueryParsing(t *testing.T) {
	var gotLimit, gotOffset int
	svc := &fakeArenaService{rankingsFn: func(_ context.Context, limit, offset int) ([]*models.ArenaRating, error) {
		gotLimit, gotOffset = limit, offset
		return []*models.ArenaRating{{UserID: 1, Rating: 1500}}, nil
	}}
	router := newArenaRouter(svc, 0)

	rec := do(t, router, http.MethodGet, "/api/arena/rankings", "")
	if rec.Code != http.StatusOK || gotLimit != services.DefaultRankingsLimit || gotOffset != 0 {
		t.Fatalf("defaults: status %d limit %d offset %d", rec.Code, gotLimit, gotOffset)
	}

	rec = do(t, router, http.MethodGet, "/api/arena/rankings?limit=5&offset=10", "")
	if rec.Code != http.StatusOK || gotLimit != 5 || gotOffset != 10 {
		t.Fatalf("explicit: status %d limit %d offset %d", rec.Code, gotLimit, gotOffset)
	}

	for _, q := range []string{"limit=x", "offset=-3"} {
		rec = do(t, router, http.MethodGet, "/api/arena/rankings?"+q, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d", q, rec.Code)
		}
	}
}

func TestUserStatsAndMeHandlers(t *testing.T) {
	svc := &fakeArenaService{
		statsFn: func(_ context.Context, userID int) (*models.UserArenaStats, error) {
			if userID == 404 {
				return nil, services.ErrUserNotFound
			}
			return &models.UserArenaStats{Rating: &models.ArenaRating{UserID: userID, Rating: 1200}}, nil
		},
		statusFn: func(_ context.Context, userID int) (*services.ArenaStatus, error) {
			return &services.ArenaStatus{Queued: true, Rating: &models.ArenaRating{UserID: userID}}, nil
		},
	}
	router := newArenaRouter(svc, 8)

	if rec := do(t, router, http.MethodGet, "/api/arena/stats/2", ""); rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	if rec := do(t, router, http.MethodGet, "/api/arena/stats/404", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing user status = %d", rec.Code)
	}

	rec := do(t, router, http.MethodGet, "/api/arena/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d", rec.Code)
	}
	var status services.ArenaStatus
	if err := json.Unmarshal(decodeBody(t, rec)["arena"], &status); err != nil {
		t.Fatal(err)
	}
	if !status.Queued || status.Rating.UserID != 8 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrTournamentNotFound, http.StatusNotFound},
		{services.ErrParticipantNotFound, http.StatusNotFound},
		{services.ErrRegistrationConflict, http.StatusConflict},
		{services.ErrTournamentFull, http.StatusConflict},
		{services.ErrMatchAlreadyFinished, http.StatusConflict},
		{fmt.Errorf("%w: bad mode", services.ErrValidationFailed), http.StatusUnprocessableEntity},
		{services.ErrTournamentInvalidSize, http.StatusUnprocessableEntity},
		{services.ErrInsufficientFunds, http.StatusBadRequest},
		{services.ErrRegistrationNotOpen, http.StatusBadRequest},
		{services.ErrNoActiveTeam, http.StatusBadRequest},
		{services.ErrForbiddenOperation, http.StatusForbidden},
		{services.ErrMatchmakingUnavailable, http.StatusServiceUnavailable},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	rec := httptest.NewRecorder()
	mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatal("internal errors must not leak to the client")
	}
}
