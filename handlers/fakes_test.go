package handlers

import (
	"context"
	"net/http"

	"github.com/Dosada05/pokearena/middleware"
	"github.com/Dosada05/pokearena/models"
	"github.com/Dosada05/pokearena/services"
)

// Unset methods panic through the nil embedded interface.
type fakeArenaService struct {
	services.ArenaService

	joinFn     func(ctx context.Context, userID int, input services.JoinQueueInput) (*services.QueueResult, error)
	leaveFn    func(ctx context.Context, userID int) error
	startFn    func(ctx context.Context, matchID, userID int) (*services.StartBattleResult, error)
	completeFn func(ctx context.Context, matchID, userID, winnerID int, result *models.BattleSummary) (*models.MatchRewards, error)
	rankingsFn func(ctx context.Context, limit, offset int) ([]*models.ArenaRating, error)
	statsFn    func(ctx context.Context, userID int) (*models.UserArenaStats, error)
	statusFn   func(ctx context.Context, userID int) (*services.ArenaStatus, error)
}

func (f *fakeArenaService) JoinQueue(ctx context.Context, userID int, input services.JoinQueueInput) (*services.QueueResult, error) {
	return f.joinFn(ctx, userID, input)
}

func (f *fakeArenaService) LeaveQueue(ctx context.Context, userID int) error {
	return f.leaveFn(ctx, userID)
}

func (f *fakeArenaService) StartBattle(ctx context.Context, matchID, userID int) (*services.StartBattleResult, error) {
	return f.startFn(ctx, matchID, userID)
}

func (f *fakeArenaService) CompleteMatch(ctx context.Context, matchID, userID, winnerID int, result *models.BattleSummary) (*models.MatchRewards, error) {
	return f.completeFn(ctx, matchID, userID, winnerID, result)
}

func (f *fakeArenaService) GetRankings(ctx context.Context, limit, offset int) ([]*models.ArenaRating, error) {
	return f.rankingsFn(ctx, limit, offset)
}

func (f *fakeArenaService) GetUserStats(ctx context.Context, userID int) (*models.UserArenaStats, error) {
	return f.statsFn(ctx, userID)
}

func (f *fakeArenaService) GetStatus(ctx context.Context, userID int) (*services.ArenaStatus, error) {
	return f.statusFn(ctx, userID)
}

type fakeTournamentService struct {
	services.TournamentService

	createFn  func(ctx context.Context, organizerID int, input services.CreateTournamentInput) (*models.Tournament, error)
	joinFn    func(ctx context.Context, tournamentID, userID int) (*models.TournamentParticipant, error)
	leaveFn   func(ctx context.Context, tournamentID, userID int) error
	startFn   func(ctx context.Context, tournamentID, userID int) (*models.TournamentBracket, error)
	reportFn  func(ctx context.Context, tournamentID, matchID, reporterID, winnerID int) (*models.TournamentMatch, error)
	playFn    func(ctx context.Context, tournamentID, matchID, userID int) (*models.TournamentMatch, error)
	getFn     func(ctx context.Context, tournamentID int) (*models.Tournament, error)
	listFn    func(ctx context.Context, input services.ListTournamentsInput) ([]*models.Tournament, error)
	bracketFn func(ctx context.Context, tournamentID int) (*models.TournamentBracket, error)
}

func (f *fakeTournamentService) CreateTournament(ctx context.Context, organizerID int, input services.CreateTournamentInput) (*models.Tournament, error) {
	return f.createFn(ctx, organizerID, input)
}

func (f *fakeTournamentService) JoinTournament(ctx context.Context, tournamentID, userID int) (*models.TournamentParticipant, error) {
	return f.joinFn(ctx, tournamentID, userID)
}

func (f *fakeTournamentService) LeaveTournament(ctx context.Context, tournamentID, userID int) error {
	return f.leaveFn(ctx, tournamentID, userID)
}

func (f *fakeTournamentService) StartTournament(ctx context.Context, tournamentID, userID int) (*models.TournamentBracket, error) {
	return f.startFn(ctx, tournamentID, userID)
}

func (f *fakeTournamentService) ReportMatchResult(ctx context.Context, tournamentID, matchID, reporterID, winnerID int) (*models.TournamentMatch, error) {
	return f.reportFn(ctx, tournamentID, matchID, reporterID, winnerID)
}

func (f *fakeTournamentService) PlayMatch(ctx context.Context, tournamentID, matchID, userID int) (*models.TournamentMatch, error) {
	return f.playFn(ctx, tournamentID, matchID, userID)
}

func (f *fakeTournamentService) GetTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	return f.getFn(ctx, tournamentID)
}

func (f *fakeTournamentService) ListTournaments(ctx context.Context, input services.ListTournamentsInput) ([]*models.Tournament, error) {
	return f.listFn(ctx, input)
}

func (f *fakeTournamentService) GetTournamentBracket(ctx context.Context, tournamentID int) (*models.TournamentBracket, error) {
	return f.bracketFn(ctx, tournamentID)
}

// asUser stands in for the auth middleware.
func asUser(userID int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.ContextWithUserID(r.Context(), userID)))
		})
	}
}
