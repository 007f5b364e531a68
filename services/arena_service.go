package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Dosada05/pokearena/battle"
	"github.com/Dosada05/pokearena/brackets"
	"github.com/Dosada05/pokearena/matchmaking"
	"github.com/Dosada05/pokearena/models"
	"github.com/Dosada05/pokearena/repositories"
	"github.com/Dosada05/pokearena/storage"
	"github.com/Dosada05/pokearena/utils"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultRankingsLimit = 20
	MaxRankingsLimit     = 100
	recentMatchesLimit   = 10
	expiryCancelTimeout  = 5 * time.Second
	rankedBonusGems      = 10
	rankedBonusChance    = 0.20
	loserCreditsPercent  = 30
	loserXPPercent       = 50
	drawPercent          = 50
)

type modeReward struct {
	credits    int
	experience int
}

var arenaModeRewards = map[models.MatchMode]modeReward{
	models.ModeRanked:     {credits: 150, experience: 100},
	models.ModeCasual:     {credits: 75, experience: 50},
	models.ModeTournament: {credits: 100, experience: 75},
}

type QueueStatus string

const (
	QueueStatusQueued  QueueStatus = "QUEUED"
	QueueStatusMatched QueueStatus = "MATCHED"
)

type JoinQueueInput struct {
	Mode          models.MatchMode `json:"mode"`
	RatingRange   int              `json:"rating_range,omitempty"`
	TeamSizeLimit int              `json:"team_size_limit,omitempty"`
}

type QueueResult struct {
	Status     QueueStatus `json:"status"`
	MatchID    int         `json:"match_id"`
	OpponentID int         `json:"opponent_id,omitempty"`
	Opponent   string      `json:"opponent,omitempty"`
	Rating     int         `json:"rating"`
}

type StartBattleResult struct {
	BattleID   string                `json:"battle_id"`
	BattleData *models.BattleSummary `json:"battle_data"`
}

type ArenaStatus struct {
	Queued      bool                `json:"queued"`
	QueueEntry  *matchmaking.Entry  `json:"queue_entry,omitempty"`
	ActiveMatch *models.ArenaMatch  `json:"active_match,omitempty"`
	Rating      *models.ArenaRating `json:"rating"`
}

type ArenaService interface {
	JoinQueue(ctx context.Context, userID int, input JoinQueueInput) (*QueueResult, error)
	LeaveQueue(ctx context.Context, userID int) error
	StartBattle(ctx context.Context, matchID, userID int) (*StartBattleResult, error)
	// CompleteMatch settles a battle. winnerID 0 records a draw.
	CompleteMatch(ctx context.Context, matchID, userID, winnerID int, battleResult *models.BattleSummary) (*models.MatchRewards, error)
	GetRankings(ctx context.Context, limit, offset int) ([]*models.ArenaRating, error)
	GetUserStats(ctx context.Context, userID int) (*models.UserArenaStats, error)
	GetStatus(ctx context.Context, userID int) (*ArenaStatus, error)
	CancelStaleMatches(ctx context.Context, olderThan time.Duration) (int64, error)
	HandleQueueExpiry(entry matchmaking.Entry)
}

type ArenaConfig struct {
	MaxTurns int
}

type ArenaDeps struct {
	Queue    *matchmaking.Queue
	Engine   *battle.Engine
	Tx       repositories.TxManager
	Profiles repositories.ProfileRepository
	Ratings  repositories.RatingRepository
	Matches  repositories.ArenaMatchRepository
	Ledger   repositories.LedgerRepository
	Archive  storage.BattleArchiver
	Notifier Notifier
	Rand     utils.Rand
	IDs      IDFunc
	Logger   zerolog.Logger
}

type arenaService struct {
	cfg      ArenaConfig
	queue    *matchmaking.Queue
	engine   *battle.Engine
	tx       repositories.TxManager
	profiles repositories.ProfileRepository
	ratings  repositories.RatingRepository
	matches  repositories.ArenaMatchRepository
	ledger   repositories.LedgerRepository
	archive  storage.BattleArchiver
	notifier Notifier
	rng      utils.Rand
	newID    IDFunc
	now      func() time.Time
	logger   zerolog.Logger
}

// NewArenaService wires the queue expiry callback to the service.
func NewArenaService(cfg ArenaConfig, deps ArenaDeps) ArenaService {
	s := &arenaService{
		cfg:      cfg,
		queue:    deps.Queue,
		engine:   deps.Engine,
		tx:       deps.Tx,
		profiles: deps.Profiles,
		ratings:  deps.Ratings,
		matches:  deps.Matches,
		ledger:   deps.Ledger,
		archive:  deps.Archive,
		notifier: deps.Notifier,
		rng:      deps.Rand,
		newID:    deps.IDs,
		now:      time.Now,
		logger:   deps.Logger.With().Str("service", "arena").Logger(),
	}
	if s.archive == nil {
		s.archive = storage.NoopArchive{}
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.rng == nil {
		s.rng = utils.NewTimeSeededRand()
	}
	if s.newID == nil {
		s.newID = defaultIDFunc
	}
	if s.cfg.MaxTurns <= 0 {
		s.cfg.MaxTurns = battle.DefaultMaxTurns
	}
	s.queue.SetExpiryFunc(s.HandleQueueExpiry)
	return s
}

func (s *arenaService) JoinQueue(ctx context.Context, userID int, input JoinQueueInput) (*QueueResult, error) {
	if input.Mode != models.ModeRanked && input.Mode != models.ModeCasual {
		return nil, fmt.Errorf("%w: mode must be RANKED or CASUAL", ErrValidationFailed)
	}
	if input.RatingRange < 0 || input.TeamSizeLimit < 0 {
		return nil, fmt.Errorf("%w: rating range and team size limit must not be negative", ErrValidationFailed)
	}
	if s.queue.Contains(userID) {
		return nil, ErrAlreadyQueued
	}

	active, err := s.matches.FindActiveByUser(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrArenaMatchNotFound) {
		return nil, fmt.Errorf("failed to check active match for user %d: %w", userID, err)
	}
	if active != nil {
		return nil, ErrAlreadyInMatch
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	teamSize := models.CountAlive(profile.ActiveTeam)
	if teamSize == 0 {
		return nil, ErrNoActiveTeam
	}
	if input.TeamSizeLimit > 0 && teamSize > input.TeamSizeLimit {
		return nil, fmt.Errorf("%w: team of %d exceeds limit %d", ErrTeamSizeMismatch, teamSize, input.TeamSizeLimit)
	}

	rating, err := s.ratings.EnsureDefault(ctx, nil, userID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	entry := matchmaking.Entry{
		UserID:      userID,
		Username:    profile.Username,
		Rating:      rating.Rating,
		TeamSize:    teamSize,
		Mode:        input.Mode,
		RatingRange: input.RatingRange,
	}

	// A partner whose WAITING match got cancelled under us is skipped and
	// the search repeats.
	for {
		partner, matched, err := s.queue.FindOrEnqueue(entry)
		switch {
		case errors.Is(err, matchmaking.ErrAlreadyQueued):
			return nil, ErrAlreadyQueued
		case errors.Is(err, matchmaking.ErrQueueClosed):
			return nil, ErrMatchmakingUnavailable
		case err != nil:
			return nil, err
		}

		if !matched {
			return s.openWaitingMatch(ctx, entry, rating.Rating)
		}

		err = s.matches.AttachOpponent(ctx, partner.MatchID, userID)
		if errors.Is(err, repositories.ErrArenaMatchStateChanged) {
			s.logger.Warn().Int("match_id", partner.MatchID).Int("user_id", userID).Msg("partner match no longer waiting, searching again")
			continue
		}
		if err != nil {
			if qErr := s.queue.Requeue(*partner); qErr != nil {
				s.logger.Error().Err(qErr).Int("user_id", partner.UserID).Int("match_id", partner.MatchID).Msg("failed to requeue partner")
			}
			return nil, fmt.Errorf("failed to attach user %d to match %d: %w", userID, partner.MatchID, err)
		}

		s.logger.Info().
			Int("match_id", partner.MatchID).
			Int("player1_id", partner.UserID).
			Int("player2_id", userID).
			Str("mode", string(input.Mode)).
			Msg("players matched")
		s.notifier.Publish(brackets.ArenaMatchRoom(partner.MatchID), brackets.EventMatchReady, map[string]interface{}{
			"match_id":   partner.MatchID,
			"player1_id": partner.UserID,
			"player2_id": userID,
			"mode":       input.Mode,
		})

		return &QueueResult{
			Status:     QueueStatusMatched,
			MatchID:    partner.MatchID,
			OpponentID: partner.UserID,
			Opponent:   partner.Username,
			Rating:     rating.Rating,
		}, nil
	}
}

// openWaitingMatch creates the WAITING match for a freshly queued entry and
// links it, so later joiners can be attached to it.
func (s *arenaService) openWaitingMatch(ctx context.Context, entry matchmaking.Entry, rating int) (*QueueResult, error) {
	match := &models.ArenaMatch{
		Player1ID: entry.UserID,
		Mode:      entry.Mode,
		Status:    models.ArenaMatchWaiting,
	}
	if err := s.matches.Create(ctx, nil, match); err != nil {
		s.queue.Remove(entry.UserID)
		return nil, fmt.Errorf("failed to create waiting match for user %d: %w", entry.UserID, handleRepositoryError(err))
	}

	if !s.queue.AttachMatch(entry.UserID, match.ID) {
		if err := s.matches.Cancel(ctx, match.ID); err != nil && !errors.Is(err, repositories.ErrArenaMatchStateChanged) {
			s.logger.Error().Err(err).Int("match_id", match.ID).Msg("failed to cancel orphaned waiting match")
		}
		return nil, fmt.Errorf("%w: left the queue while joining", ErrValidationFailed)
	}

	s.logger.Info().Int("user_id", entry.UserID).Int("match_id", match.ID).Str("mode", string(entry.Mode)).Msg("user queued")
	return &QueueResult{Status: QueueStatusQueued, MatchID: match.ID, Rating: rating}, nil
}

func (s *arenaService) LeaveQueue(ctx context.Context, userID int) error {
	entry, removed := s.queue.Remove(userID)

	cancelled, err := s.matches.CancelWaitingByPlayer1(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to cancel waiting matches for user %d: %w", userID, err)
	}
	if removed && entry.MatchID != 0 {
		s.notifier.Publish(brackets.ArenaMatchRoom(entry.MatchID), brackets.EventMatchCancelled, map[string]int{"match_id": entry.MatchID})
	}
	s.logger.Info().Int("user_id", userID).Bool("was_queued", removed).Int64("cancelled_matches", cancelled).Msg("user left queue")
	return nil
}

// HandleQueueExpiry runs on the queue's timer goroutine, so it uses its own
// context.
func (s *arenaService) HandleQueueExpiry(entry matchmaking.Entry) {
	s.logger.Debug().Int("user_id", entry.UserID).Int("match_id", entry.MatchID).Msg("queue entry expired")
	if entry.MatchID == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), expiryCancelTimeout)
	defer cancel()

	err := s.matches.Cancel(ctx, entry.MatchID)
	if errors.Is(err, repositories.ErrArenaMatchStateChanged) {
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Int("match_id", entry.MatchID).Msg("failed to cancel expired waiting match")
		return
	}
	s.notifier.Publish(brackets.ArenaMatchRoom(entry.MatchID), brackets.EventMatchCancelled, map[string]interface{}{
		"match_id": entry.MatchID,
		"reason":   "queue_timeout",
	})
}

func (s *arenaService) StartBattle(ctx context.Context, matchID, userID int) (*StartBattleResult, error) {
	match, err := s.matches.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if !match.HasPlayer(userID) {
		return nil, ErrForbiddenOperation
	}
	if !isValidArenaTransition(match.Status, models.ArenaMatchInProgress) {
		return nil, fmt.Errorf("%w: match %d is %s", ErrInvalidStatusTransition, matchID, match.Status)
	}
	if match.Player2ID == nil {
		return nil, ErrMatchNotReady
	}

	var team1, team2 []*models.Combatant
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		team1, err = s.profiles.GetActiveTeam(gCtx, match.Player1ID)
		return err
	})
	g.Go(func() error {
		var err error
		team2, err = s.profiles.GetActiveTeam(gCtx, *match.Player2ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load teams for match %d: %w", matchID, handleRepositoryError(err))
	}
	size1, size2 := models.CountAlive(team1), models.CountAlive(team2)
	if size1 == 0 || size2 == 0 {
		return nil, ErrNoActiveTeam
	}
	if size1 != size2 {
		return nil, fmt.Errorf("%w: %d vs %d", ErrTeamSizeMismatch, size1, size2)
	}

	summary := s.engine.SimulateBattle(team1, team2, battle.BattleOptions{
		MaxTurns:   s.cfg.MaxTurns,
		Mode:       models.BattleModeArena,
		Difficulty: 1,
	})
	if summary.BattleID, err = s.newID(); err != nil {
		return nil, fmt.Errorf("failed to generate battle id: %w", err)
	}

	if url, err := s.archive.ArchiveBattle(ctx, summary); err != nil {
		s.logger.Warn().Err(err).Str("battle_id", summary.BattleID).Msg("battle log archive failed, keeping inline log only")
	} else {
		summary.LogURL = url
	}

	if err := s.matches.MarkInProgress(ctx, matchID, summary, s.now()); err != nil {
		discardArchivedBattle(ctx, s.archive, s.logger, summary)
		return nil, handleRepositoryError(err)
	}

	s.logger.Info().
		Int("match_id", matchID).
		Str("battle_id", summary.BattleID).
		Str("winner", string(summary.Winner)).
		Int("turns", summary.Turns).
		Msg("battle resolved")
	s.notifier.Publish(brackets.ArenaMatchRoom(matchID), brackets.EventBattleFinished, map[string]interface{}{
		"match_id":  matchID,
		"battle_id": summary.BattleID,
		"winner":    summary.Winner,
		"turns":     summary.Turns,
	})

	return &StartBattleResult{BattleID: summary.BattleID, BattleData: summary}, nil
}

func (s *arenaService) CompleteMatch(ctx context.Context, matchID, userID, winnerID int, battleResult *models.BattleSummary) (*models.MatchRewards, error) {
	var (
		rewards *models.MatchRewards
		match   *models.ArenaMatch
	)

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		match, err = s.matches.GetByID(ctx, exec, matchID)
		if err != nil {
			return handleRepositoryError(err)
		}
		if !match.HasPlayer(userID) {
			return ErrForbiddenOperation
		}
		if !isValidArenaTransition(match.Status, models.ArenaMatchCompleted) {
			return fmt.Errorf("%w: match %d is %s", ErrInvalidStatusTransition, matchID, match.Status)
		}
		if match.Player2ID == nil {
			return ErrMatchNotReady
		}

		draw := winnerID == 0
		if !draw && !match.HasPlayer(winnerID) {
			return ErrInvalidWinner
		}
		winner, loser := match.Player1ID, *match.Player2ID
		if !draw {
			winner, loser = winnerID, match.Opponent(winnerID)
		}

		r := CalculateMatchRewards(match.Mode, winner, loser, draw, s.rng)

		winnerRating, err := s.ratings.EnsureDefault(ctx, exec, winner)
		if err != nil {
			return handleRepositoryError(err)
		}
		loserRating, err := s.ratings.EnsureDefault(ctx, exec, loser)
		if err != nil {
			return handleRepositoryError(err)
		}

		winnerDelta, loserDelta := 0, 0
		if match.Mode == models.ModeRanked {
			winnerDelta, loserDelta = matchmaking.Deltas(winnerRating.Rating, loserRating.Rating, draw)
		}
		r.Winner.RankingPoints = winnerDelta
		r.Loser.RankingPoints = loserDelta

		winnerOutcome, loserOutcome := matchmaking.OutcomeWin, matchmaking.OutcomeLoss
		if draw {
			winnerOutcome, loserOutcome = matchmaking.OutcomeDraw, matchmaking.OutcomeDraw
		}
		matchmaking.ApplyResult(winnerRating, winnerDelta, winnerOutcome)
		matchmaking.ApplyResult(loserRating, loserDelta, loserOutcome)
		if err := s.ratings.Save(ctx, exec, winnerRating); err != nil {
			return handleRepositoryError(err)
		}
		if err := s.ratings.Save(ctx, exec, loserRating); err != nil {
			return handleRepositoryError(err)
		}

		for _, pr := range []models.PlayerRewards{r.Winner, r.Loser} {
			if err := recordCurrency(ctx, exec, s.profiles, s.ledger, pr.UserID, pr.Delta(), "arena_match_reward", models.LedgerRefArenaMatch, matchID); err != nil {
				return err
			}
		}

		completedAt := s.now()
		match.Rewards = &r
		match.CompletedAt = &completedAt
		match.WinnerID = nil
		if !draw {
			w := winner
			match.WinnerID = &w
		}
		if match.BattleData == nil && battleResult != nil {
			match.BattleData = battleResult
		}
		if err := s.matches.Complete(ctx, exec, match); err != nil {
			return handleRepositoryError(err)
		}
		rewards = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("match_id", matchID).
		Int("winner_id", winnerID).
		Bool("draw", rewards.Draw).
		Int("winner_points", rewards.Winner.RankingPoints).
		Int("loser_points", rewards.Loser.RankingPoints).
		Msg("arena match completed")
	s.notifier.Publish(brackets.ArenaMatchRoom(matchID), brackets.EventMatchCompleted, map[string]interface{}{
		"match_id":  matchID,
		"winner_id": match.WinnerID,
		"rewards":   rewards,
	})
	return rewards, nil
}

// CalculateMatchRewards splits the mode reward between the two players. For
// a draw winnerID and loserID are just the two sides.
func CalculateMatchRewards(mode models.MatchMode, winnerID, loserID int, draw bool, rng utils.Rand) models.MatchRewards {
	base, ok := arenaModeRewards[mode]
	if !ok {
		base = arenaModeRewards[models.ModeCasual]
	}
	percent := func(amount, pct int) int {
		return int(math.Floor(float64(amount*pct) / 100))
	}

	if draw {
		share := models.PlayerRewards{
			Credits:    percent(base.credits, drawPercent),
			Experience: percent(base.experience, drawPercent),
		}
		w, l := share, share
		w.UserID, l.UserID = winnerID, loserID
		return models.MatchRewards{Winner: w, Loser: l, Draw: true}
	}

	winner := models.PlayerRewards{UserID: winnerID, Credits: base.credits, Experience: base.experience}
	if mode == models.ModeRanked && rng.Float64() < rankedBonusChance {
		winner.Gems = rankedBonusGems
	}
	loser := models.PlayerRewards{
		UserID:     loserID,
		Credits:    percent(base.credits, loserCreditsPercent),
		Experience: percent(base.experience, loserXPPercent),
	}
	return models.MatchRewards{Winner: winner, Loser: loser}
}

func (s *arenaService) GetRankings(ctx context.Context, limit, offset int) ([]*models.ArenaRating, error) {
	if limit <= 0 {
		limit = DefaultRankingsLimit
	}
	if limit > MaxRankingsLimit {
		limit = MaxRankingsLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.ratings.ListTop(ctx, limit, offset)
}

func (s *arenaService) GetUserStats(ctx context.Context, userID int) (*models.UserArenaStats, error) {
	var (
		profile *models.UserProfile
		rating  *models.ArenaRating
		recent  []*models.ArenaMatch
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.profiles.GetProfile(gCtx, userID)
		return handleRepositoryError(err)
	})
	g.Go(func() error {
		r, err := s.ratings.GetByUserID(gCtx, userID)
		if errors.Is(err, repositories.ErrRatingNotFound) {
			rating = models.NewArenaRating(userID)
			return nil
		}
		rating = r
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.matches.ListRecentByUser(gCtx, userID, recentMatchesLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rating.Username = profile.Username
	if recent == nil {
		recent = []*models.ArenaMatch{}
	}
	return &models.UserArenaStats{
		Rating:        rating,
		WinRate:       rating.WinRate(),
		RecentMatches: recent,
	}, nil
}

func (s *arenaService) GetStatus(ctx context.Context, userID int) (*ArenaStatus, error) {
	status := &ArenaStatus{}
	for _, e := range s.queue.Snapshot() {
		if e.UserID == userID {
			entry := e
			status.Queued = true
			status.QueueEntry = &entry
			break
		}
	}

	active, err := s.matches.FindActiveByUser(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrArenaMatchNotFound) {
		return nil, fmt.Errorf("failed to load active match for user %d: %w", userID, err)
	}
	status.ActiveMatch = active

	rating, err := s.ratings.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrRatingNotFound) {
		rating, err = models.NewArenaRating(userID), nil
	}
	if err != nil {
		return nil, err
	}
	status.Rating = rating
	return status, nil
}

func (s *arenaService) CancelStaleMatches(ctx context.Context, olderThan time.Duration) (int64, error) {
	n, err := s.matches.CancelStaleWaiting(ctx, s.now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info().Int64("cancelled", n).Dur("older_than", olderThan).Msg("stale waiting matches cancelled")
	}
	return n, nil
}
