package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/pokearena/battle"
	"github.com/Dosada05/pokearena/brackets"
	"github.com/Dosada05/pokearena/models"
	"github.com/Dosada05/pokearena/rarity"
	"github.com/Dosada05/pokearena/repositories"
	"github.com/Dosada05/pokearena/storage"
	"github.com/Dosada05/pokearena/utils"
	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	MinTournamentParticipants = 2
	MaxTournamentParticipants = 256
	DefaultTournamentsLimit   = 20
	MaxTournamentsLimit       = 100

	slugSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	slugSuffixLength   = 6
	slugAttempts       = 3

	// Champions draw from the event table.
	championPack = rarity.PackEvent
)

type CreateTournamentInput struct {
	Name            string                  `json:"name"`
	Description     *string                 `json:"description,omitempty"`
	Format          models.TournamentFormat `json:"format"`
	MaxParticipants int                     `json:"max_participants"`
	EntryFee        int                     `json:"entry_fee"`
	Prizes          models.Prizes           `json:"prizes"`
	StartsAt        *time.Time              `json:"starts_at,omitempty"`
}

type ListTournamentsInput struct {
	Status      string
	OrganizerID *int
	Limit       int
	Offset      int
}

type TournamentService interface {
	CreateTournament(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error)
	JoinTournament(ctx context.Context, tournamentID, userID int) (*models.TournamentParticipant, error)
	LeaveTournament(ctx context.Context, tournamentID, userID int) error
	StartTournament(ctx context.Context, tournamentID, userID int) (*models.TournamentBracket, error)
	ReportMatchResult(ctx context.Context, tournamentID, matchID, reporterID, winnerParticipantID int) (*models.TournamentMatch, error)
	// PlayMatch simulates the match on both participants' active teams and
	// reports the outcome.
	PlayMatch(ctx context.Context, tournamentID, matchID, userID int) (*models.TournamentMatch, error)
	GetTournament(ctx context.Context, tournamentID int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, input ListTournamentsInput) ([]*models.Tournament, error)
	GetTournamentBracket(ctx context.Context, tournamentID int) (*models.TournamentBracket, error)
}

type TournamentConfig struct {
	MaxTurns int
}

type TournamentDeps struct {
	Engine       *battle.Engine
	Tx           repositories.TxManager
	Tournaments  repositories.TournamentRepository
	Participants repositories.ParticipantRepository
	Matches      repositories.TournamentMatchRepository
	Profiles     repositories.ProfileRepository
	Ledger       repositories.LedgerRepository
	Archive      storage.BattleArchiver
	Notifier     Notifier
	Rand         utils.Rand
	Rarity       *rarity.Generator
	IDs          IDFunc
	Logger       zerolog.Logger
}

type tournamentService struct {
	cfg          TournamentConfig
	engine       *battle.Engine
	tx           repositories.TxManager
	tournaments  repositories.TournamentRepository
	participants repositories.ParticipantRepository
	matches      repositories.TournamentMatchRepository
	profiles     repositories.ProfileRepository
	ledger       repositories.LedgerRepository
	archive      storage.BattleArchiver
	notifier     Notifier
	rng          utils.Rand
	rarity       *rarity.Generator
	newID        IDFunc
	slugSuffix   IDFunc
	now          func() time.Time
	logger       zerolog.Logger
}

func NewTournamentService(cfg TournamentConfig, deps TournamentDeps) TournamentService {
	s := &tournamentService{
		cfg:          cfg,
		engine:       deps.Engine,
		tx:           deps.Tx,
		tournaments:  deps.Tournaments,
		participants: deps.Participants,
		matches:      deps.Matches,
		profiles:     deps.Profiles,
		ledger:       deps.Ledger,
		archive:      deps.Archive,
		notifier:     deps.Notifier,
		rng:          deps.Rand,
		rarity:       deps.Rarity,
		newID:        deps.IDs,
		slugSuffix: func() (string, error) {
			return gonanoid.Generate(slugSuffixAlphabet, slugSuffixLength)
		},
		now:    time.Now,
		logger: deps.Logger.With().Str("service", "tournament").Logger(),
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
	if s.rarity == nil {
		s.rarity = rarity.NewGenerator(s.rng)
	}
	if s.newID == nil {
		s.newID = defaultIDFunc
	}
	if s.cfg.MaxTurns <= 0 {
		s.cfg.MaxTurns = battle.DefaultMaxTurns
	}
	return s
}

func (s *tournamentService) CreateTournament(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if !input.Format.IsValid() {
		return nil, ErrTournamentInvalidFormat
	}
	if input.MaxParticipants < MinTournamentParticipants || input.MaxParticipants > MaxTournamentParticipants {
		return nil, fmt.Errorf("%w: max participants must be within %d..%d", ErrTournamentInvalidSize, MinTournamentParticipants, MaxTournamentParticipants)
	}
	if input.EntryFee < 0 {
		return nil, fmt.Errorf("%w: entry fee must not be negative", ErrValidationFailed)
	}
	p := input.Prizes
	if p.First < 0 || p.Second < 0 || p.Third < 0 || p.Participation < 0 {
		return nil, fmt.Errorf("%w: prizes must not be negative", ErrValidationFailed)
	}

	t := &models.Tournament{
		Name:            name,
		Description:     input.Description,
		Format:          input.Format,
		Status:          models.TournamentRegistration,
		OrganizerID:     organizerID,
		MaxParticipants: input.MaxParticipants,
		EntryFee:        input.EntryFee,
		Prizes:          input.Prizes,
		StartsAt:        input.StartsAt,
	}

	base := slug.Make(name)
	for attempt := 1; ; attempt++ {
		suffix, err := s.slugSuffix()
		if err != nil {
			return nil, fmt.Errorf("failed to generate slug suffix: %w", err)
		}
		t.Slug = base + "-" + suffix

		err = s.tournaments.Create(ctx, t)
		if err == nil {
			break
		}
		if errors.Is(err, repositories.ErrTournamentSlugConflict) && attempt < slugAttempts {
			continue
		}
		if errors.Is(err, repositories.ErrTournamentInvalidOrg) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.Info().Int("tournament_id", t.ID).Str("slug", t.Slug).Str("format", string(t.Format)).Int("organizer_id", organizerID).Msg("tournament created")
	return t, nil
}

func (s *tournamentService) JoinTournament(ctx context.Context, tournamentID, userID int) (*models.TournamentParticipant, error) {
	team, err := s.profiles.GetActiveTeam(ctx, userID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if len(team) == 0 {
		return nil, ErrNoActiveTeam
	}

	var participant *models.TournamentParticipant
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := s.tournaments.GetByID(ctx, exec, tournamentID)
		if err != nil {
			return handleRepositoryError(err)
		}
		if t.Status != models.TournamentRegistration {
			return ErrRegistrationNotOpen
		}

		existing, err := s.participants.GetByTournamentAndUser(ctx, exec, tournamentID, userID)
		if err != nil && !errors.Is(err, repositories.ErrParticipantNotFound) {
			return err
		}
		if existing != nil {
			return ErrRegistrationConflict
		}
		if t.ParticipantCount >= t.MaxParticipants {
			return ErrTournamentFull
		}

		if t.EntryFee > 0 {
			fee := models.ProfileDelta{Credits: -t.EntryFee}
			if err := recordCurrency(ctx, exec, s.profiles, s.ledger, userID, fee, "tournament_entry_fee", models.LedgerRefTournament, t.ID); err != nil {
				return err
			}
		}

		participant = &models.TournamentParticipant{
			TournamentID: tournamentID,
			UserID:       userID,
			FeePaid:      t.EntryFee,
		}
		if err := s.participants.Create(ctx, exec, participant); err != nil {
			return handleRepositoryError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("tournament_id", tournamentID).Int("user_id", userID).Int("fee_paid", participant.FeePaid).Msg("participant joined")
	s.notifier.Publish(brackets.TournamentRoom(tournamentID), brackets.EventBracketUpdated, map[string]interface{}{
		"tournament_id":  tournamentID,
		"participant_id": participant.ID,
		"action":         "joined",
	})
	return participant, nil
}

func (s *tournamentService) LeaveTournament(ctx context.Context, tournamentID, userID int) error {
	var refunded int
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := s.tournaments.GetByID(ctx, exec, tournamentID)
		if err != nil {
			return handleRepositoryError(err)
		}
		if t.Status != models.TournamentRegistration {
			return ErrRegistrationNotOpen
		}

		p, err := s.participants.GetByTournamentAndUser(ctx, exec, tournamentID, userID)
		if err != nil {
			return handleRepositoryError(err)
		}
		if err := s.participants.Delete(ctx, exec, p.ID); err != nil {
			return handleRepositoryError(err)
		}

		if p.FeePaid > 0 {
			refund := models.ProfileDelta{Credits: p.FeePaid}
			if err := recordCurrency(ctx, exec, s.profiles, s.ledger, userID, refund, "tournament_entry_refund", models.LedgerRefTournament, t.ID); err != nil {
				return err
			}
		}
		refunded = p.FeePaid
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int("tournament_id", tournamentID).Int("user_id", userID).Int("refunded", refunded).Msg("participant left")
	s.notifier.Publish(brackets.TournamentRoom(tournamentID), brackets.EventBracketUpdated, map[string]interface{}{
		"tournament_id": tournamentID,
		"user_id":       userID,
		"action":        "left",
	})
	return nil
}

func (s *tournamentService) StartTournament(ctx context.Context, tournamentID, userID int) (*models.TournamentBracket, error) {
	var (
		generatorName string
		totalRounds   int
	)
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := s.tournaments.GetByID(ctx, exec, tournamentID)
		if err != nil {
			return handleRepositoryError(err)
		}
		if t.OrganizerID != userID {
			return ErrForbiddenOperation
		}
		if !isValidTournamentTransition(t.Status, models.TournamentInProgress) {
			return fmt.Errorf("%w: tournament %d is %s", ErrInvalidStatusTransition, tournamentID, t.Status)
		}

		participants, err := s.participants.ListByTournament(ctx, exec, tournamentID)
		if err != nil {
			return err
		}
		if len(participants) < MinTournamentParticipants {
			return ErrNotEnoughParticipants
		}

		generator, err := brackets.GeneratorFor(t.Format, s.rng, s.logger)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTournamentInvalidFormat, err)
		}
		generated, err := generator.GenerateBracket(ctx, brackets.GenerateBracketParams{Tournament: t, Participants: participants})
		if err != nil {
			if errors.Is(err, brackets.ErrNotEnoughParticipants) {
				return ErrNotEnoughParticipants
			}
			return fmt.Errorf("failed to generate bracket: %w", err)
		}

		if err := s.matches.CreateBatch(ctx, exec, s.toTournamentMatches(tournamentID, generated)); err != nil {
			return err
		}

		generatorName = generator.GetName()
		totalRounds = generator.TotalRounds(len(participants))
		return s.tournaments.UpdateProgress(ctx, exec, tournamentID, models.TournamentInProgress, 1, totalRounds)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("tournament_id", tournamentID).
		Str("generator", generatorName).
		Int("total_rounds", totalRounds).
		Msg("tournament started")

	bracket, err := s.GetTournamentBracket(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	s.notifier.Publish(brackets.TournamentRoom(tournamentID), brackets.EventBracketUpdated, bracket)
	return bracket, nil
}

// toTournamentMatches converts generated pairings into rows. A bye is stored
// as a finished walkover for its only participant.
func (s *tournamentService) toTournamentMatches(tournamentID int, generated []*brackets.BracketMatch) []*models.TournamentMatch {
	out := make([]*models.TournamentMatch, 0, len(generated))
	for _, bm := range generated {
		m := &models.TournamentMatch{
			TournamentID:   tournamentID,
			Round:          bm.Round,
			OrderInRound:   bm.OrderInRound,
			Participant1ID: bm.Participant1ID,
			Participant2ID: bm.Participant2ID,
			Status:         models.TournamentMatchPending,
		}
		if bm.IsBye {
			now := s.now()
			winner := *bm.ByeParticipantID
			m.Status = models.TournamentMatchWalkover
			m.WinnerParticipantID = &winner
			m.CompletedAt = &now
		}
		out = append(out, m)
	}
	return out
}

func (s *tournamentService) ReportMatchResult(ctx context.Context, tournamentID, matchID, reporterID, winnerParticipantID int) (*models.TournamentMatch, error) {
	return s.recordResult(ctx, tournamentID, matchID, reporterID, func(*models.TournamentMatch) (int, *models.BattleSummary, error) {
		return winnerParticipantID, nil, nil
	})
}

func (s *tournamentService) PlayMatch(ctx context.Context, tournamentID, matchID, userID int) (*models.TournamentMatch, error) {
	// The battle runs before the result transaction, so a concurrent report
	// simply makes this one fail with ErrMatchAlreadyFinished.
	m, err := s.matches.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if m.TournamentID != tournamentID {
		return nil, ErrMatchNotFound
	}
	if m.Status.IsFinished() {
		return nil, ErrMatchAlreadyFinished
	}
	if m.Participant1ID == nil || m.Participant2ID == nil {
		return nil, fmt.Errorf("%w: match %d is missing a participant", ErrValidationFailed, matchID)
	}
	t, err := s.tournaments.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if t.Status != models.TournamentInProgress {
		return nil, ErrTournamentNotInProgress
	}
	if err := s.authorizeMatchActor(ctx, nil, t, m, userID); err != nil {
		return nil, err
	}

	var p1, p2 *models.TournamentParticipant
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p1, err = s.participants.GetByID(gCtx, nil, *m.Participant1ID)
		return err
	})
	g.Go(func() error {
		var err error
		p2, err = s.participants.GetByID(gCtx, nil, *m.Participant2ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, handleRepositoryError(err)
	}

	var team1, team2 []*models.Combatant
	g, gCtx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		team1, err = s.profiles.GetActiveTeam(gCtx, p1.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		team2, err = s.profiles.GetActiveTeam(gCtx, p2.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, handleRepositoryError(err)
	}
	if len(team1) == 0 || len(team2) == 0 {
		return nil, ErrNoActiveTeam
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

	winner := battleWinnerParticipant(summary, p1.ID, p2.ID)
	s.logger.Info().
		Int("tournament_id", tournamentID).
		Int("match_id", matchID).
		Str("battle_id", summary.BattleID).
		Str("result", string(summary.Winner)).
		Int("winner_participant_id", winner).
		Msg("tournament battle resolved")

	match, err := s.recordResult(ctx, tournamentID, matchID, userID, func(*models.TournamentMatch) (int, *models.BattleSummary, error) {
		return winner, summary, nil
	})
	if err != nil {
		discardArchivedBattle(ctx, s.archive, s.logger, summary)
		return nil, err
	}
	return match, nil
}

// battleWinnerParticipant maps a battle outcome onto participants. A drawn
// battle goes to the side with more remaining HP, then to participant 1.
func battleWinnerParticipant(summary *models.BattleSummary, p1, p2 int) int {
	switch summary.Winner {
	case models.WinnerPlayer1:
		return p1
	case models.WinnerPlayer2:
		return p2
	}
	if remainingHP(summary.Team2Final) > remainingHP(summary.Team1Final) {
		return p2
	}
	return p1
}

func remainingHP(team []models.CombatantSnapshot) int {
	total := 0
	for _, c := range team {
		total += c.CurrentHP
	}
	return total
}

type resultFunc func(m *models.TournamentMatch) (winnerParticipantID int, summary *models.BattleSummary, err error)

type roundOutcome struct {
	advancedTo     int
	championID     int
	championUserID int
	prize          int
	reward         models.Reward
}

func (s *tournamentService) recordResult(ctx context.Context, tournamentID, matchID, actorID int, result resultFunc) (*models.TournamentMatch, error) {
	var (
		match   *models.TournamentMatch
		outcome roundOutcome
	)

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := s.tournaments.GetByID(ctx, exec, tournamentID)
		if err != nil {
			return handleRepositoryError(err)
		}
		if t.Status != models.TournamentInProgress {
			return ErrTournamentNotInProgress
		}

		m, err := s.matches.GetByID(ctx, exec, matchID)
		if err != nil {
			return handleRepositoryError(err)
		}
		if m.TournamentID != tournamentID {
			return ErrMatchNotFound
		}
		if m.Status.IsFinished() {
			return ErrMatchAlreadyFinished
		}
		if err := s.authorizeMatchActor(ctx, exec, t, m, actorID); err != nil {
			return err
		}

		winnerID, battleData, err := result(m)
		if err != nil {
			return err
		}
		if m.Participant2ID == nil || !m.HasParticipant(winnerID) {
			return ErrInvalidWinner
		}

		completedAt := s.now()
		m.WinnerParticipantID = &winnerID
		m.Status = models.TournamentMatchCompleted
		m.CompletedAt = &completedAt
		m.BattleData = battleData
		if err := s.matches.Complete(ctx, exec, m); err != nil {
			return handleRepositoryError(err)
		}

		if t.Format != models.FormatRoundRobin {
			loserID := *m.Participant1ID
			if loserID == winnerID {
				loserID = *m.Participant2ID
			}
			if err := s.participants.MarkEliminated(ctx, exec, loserID); err != nil {
				return handleRepositoryError(err)
			}
		}

		match = m
		outcome, err = s.advance(ctx, exec, t, m.Round)
		return err
	})
	if err != nil {
		return nil, err
	}

	room := brackets.TournamentRoom(tournamentID)
	s.notifier.Publish(room, brackets.EventBracketUpdated, map[string]interface{}{
		"tournament_id": tournamentID,
		"match":         match,
		"next_round":    outcome.advancedTo,
	})
	if outcome.championID != 0 {
		s.logger.Info().
			Int("tournament_id", tournamentID).
			Int("winner_participant_id", outcome.championID).
			Int("prize", outcome.prize).
			Msg("tournament completed")
		s.notifier.Publish(room, brackets.EventTournamentCompleted, map[string]interface{}{
			"tournament_id":         tournamentID,
			"winner_participant_id": outcome.championID,
			"winner_user_id":        outcome.championUserID,
			"prize":                 outcome.prize,
			"champion_reward":       models.TaggedReward{Reward: outcome.reward},
		})
	}
	return match, nil
}

// authorizeMatchActor allows the organizer and the two sides of the match.
func (s *tournamentService) authorizeMatchActor(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament, m *models.TournamentMatch, userID int) error {
	if t.OrganizerID == userID {
		return nil
	}
	p, err := s.participants.GetByTournamentAndUser(ctx, exec, t.ID, userID)
	if errors.Is(err, repositories.ErrParticipantNotFound) {
		return ErrForbiddenOperation
	}
	if err != nil {
		return err
	}
	if !m.HasParticipant(p.ID) {
		return ErrForbiddenOperation
	}
	return nil
}

// advance checks whether round is finished and, if so, either persists the
// next round or crowns the champion.
func (s *tournamentService) advance(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament, round int) (roundOutcome, error) {
	var outcome roundOutcome

	roundMatches, err := s.matches.ListByRound(ctx, exec, t.ID, round)
	if err != nil {
		return outcome, err
	}
	if !brackets.IsRoundComplete(roundMatches) {
		return outcome, nil
	}

	if t.Format == models.FormatRoundRobin {
		standings := brackets.Standings(roundMatches)
		return s.finish(ctx, exec, t, standings[0].ParticipantID)
	}

	next, err := brackets.AdvanceRound(round, roundMatches)
	if err != nil {
		return outcome, fmt.Errorf("failed to advance round %d: %w", round, err)
	}
	if next == nil {
		winners, err := brackets.RoundWinners(roundMatches)
		if err != nil {
			return outcome, err
		}
		return s.finish(ctx, exec, t, winners[0])
	}

	if err := s.matches.CreateBatch(ctx, exec, s.toTournamentMatches(t.ID, next)); err != nil {
		return outcome, err
	}
	totalRounds := t.TotalRounds
	if round+1 > totalRounds {
		totalRounds = round + 1
	}
	if err := s.tournaments.UpdateProgress(ctx, exec, t.ID, models.TournamentInProgress, round+1, totalRounds); err != nil {
		return outcome, err
	}
	outcome.advancedTo = round + 1
	s.logger.Info().Int("tournament_id", t.ID).Int("round", round+1).Int("matches", len(next)).Msg("tournament round advanced")
	return outcome, nil
}

// finish stores the champion and pays the first prize. Lower prize tiers are
// kept on the tournament but not distributed.
func (s *tournamentService) finish(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament, winnerParticipantID int) (roundOutcome, error) {
	outcome := roundOutcome{championID: winnerParticipantID}

	winner, err := s.participants.GetByID(ctx, exec, winnerParticipantID)
	if err != nil {
		return outcome, handleRepositoryError(err)
	}
	outcome.championUserID = winner.UserID

	reward, err := s.rarity.RollPokemonReward(championPack)
	if err != nil {
		return outcome, fmt.Errorf("failed to roll champion reward for tournament %d: %w", t.ID, err)
	}
	outcome.reward = reward

	if err := s.tournaments.SetWinner(ctx, exec, t.ID, winnerParticipantID, reward); err != nil {
		return outcome, handleRepositoryError(err)
	}
	if t.Prizes.First > 0 {
		prize := models.ProfileDelta{Credits: t.Prizes.First}
		if err := recordCurrency(ctx, exec, s.profiles, s.ledger, winner.UserID, prize, "tournament_prize", models.LedgerRefTournament, t.ID); err != nil {
			return outcome, err
		}
		outcome.prize = t.Prizes.First
	}
	return outcome, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	var (
		t            *models.Tournament
		participants []*models.TournamentParticipant
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		t, err = s.tournaments.GetByID(gCtx, nil, tournamentID)
		return handleRepositoryError(err)
	})
	g.Go(func() error {
		var err error
		participants, err = s.participants.ListByTournament(gCtx, nil, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	t.Participants = participants
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, input ListTournamentsInput) ([]*models.Tournament, error) {
	filter := repositories.ListTournamentsFilter{
		OrganizerID: input.OrganizerID,
		Limit:       input.Limit,
		Offset:      input.Offset,
	}
	if input.Status != "" {
		status := models.TournamentStatus(strings.ToUpper(input.Status))
		switch status {
		case models.TournamentRegistration, models.TournamentInProgress, models.TournamentCompleted, models.TournamentCancelled:
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidationFailed, input.Status)
		}
		filter.Status = &status
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultTournamentsLimit
	}
	if filter.Limit > MaxTournamentsLimit {
		filter.Limit = MaxTournamentsLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.tournaments.List(ctx, filter)
}

func (s *tournamentService) GetTournamentBracket(ctx context.Context, tournamentID int) (*models.TournamentBracket, error) {
	var (
		t            *models.Tournament
		matches      []*models.TournamentMatch
		participants []*models.TournamentParticipant
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		t, err = s.tournaments.GetByID(gCtx, nil, tournamentID)
		return handleRepositoryError(err)
	})
	g.Go(func() error {
		var err error
		matches, err = s.matches.ListByTournament(gCtx, nil, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		participants, err = s.participants.ListByTournament(gCtx, nil, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return brackets.BuildView(t, matches, participants), nil
}
