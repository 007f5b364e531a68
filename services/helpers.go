package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/pokearena/models"
	"github.com/Dosada05/pokearena/repositories"
	"github.com/Dosada05/pokearena/storage"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// Notifier pushes live events to websocket rooms. *brackets.Hub satisfies it.
type Notifier interface {
	Publish(roomID, eventType string, payload interface{})
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, string, interface{}) {}

// IDFunc generates public identifiers such as battle ids.
type IDFunc func() (string, error)

func defaultIDFunc() (string, error) {
	return gonanoid.New()
}

// discardArchivedBattle removes the archived log of a battle whose result
// never reached the database.
func discardArchivedBattle(ctx context.Context, archive storage.BattleArchiver, logger zerolog.Logger, summary *models.BattleSummary) {
	if summary == nil || summary.LogURL == "" {
		return
	}
	if err := archive.DiscardBattle(context.WithoutCancel(ctx), summary.BattleID); err != nil {
		logger.Warn().Err(err).Str("battle_id", summary.BattleID).Msg("failed to discard orphaned battle log")
	}
}

func isValidArenaTransition(current, next models.ArenaMatchStatus) bool {
	allowed := map[models.ArenaMatchStatus][]models.ArenaMatchStatus{
		models.ArenaMatchWaiting:    {models.ArenaMatchInProgress, models.ArenaMatchCancelled},
		models.ArenaMatchInProgress: {models.ArenaMatchCompleted},
		models.ArenaMatchCompleted:  {},
		models.ArenaMatchCancelled:  {},
	}
	for _, s := range allowed[current] {
		if s == next {
			return true
		}
	}
	return false
}

func isValidTournamentTransition(current, next models.TournamentStatus) bool {
	allowed := map[models.TournamentStatus][]models.TournamentStatus{
		models.TournamentRegistration: {models.TournamentInProgress, models.TournamentCancelled},
		models.TournamentInProgress:   {models.TournamentCompleted, models.TournamentCancelled},
		models.TournamentCompleted:    {},
		models.TournamentCancelled:    {},
	}
	for _, s := range allowed[current] {
		if s == next {
			return true
		}
	}
	return false
}

// handleRepositoryError translates repository sentinels into service errors.
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrInsufficientBalance):
		return ErrInsufficientFunds
	case errors.Is(err, repositories.ErrArenaMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrArenaMatchStateChanged):
		return ErrInvalidStatusTransition
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrParticipantNotFound):
		return ErrParticipantNotFound
	case errors.Is(err, repositories.ErrParticipantConflict):
		return ErrRegistrationConflict
	case errors.Is(err, repositories.ErrTournamentMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrTournamentMatchAlreadyFinal):
		return ErrMatchAlreadyFinished
	}
	return err
}

// recordCurrency applies a balance change and writes one ledger row per
// non-zero currency, inside the caller's transaction.
func recordCurrency(
	ctx context.Context,
	exec repositories.SQLExecutor,
	profiles repositories.ProfileRepository,
	ledger repositories.LedgerRepository,
	userID int,
	delta models.ProfileDelta,
	reason string,
	refType models.LedgerReference,
	refID int,
) error {
	if delta.IsZero() {
		return nil
	}
	if err := profiles.ApplyDelta(ctx, exec, userID, delta); err != nil {
		return fmt.Errorf("apply %s for user %d: %w", reason, userID, handleRepositoryError(err))
	}

	amounts := []struct {
		currency models.Currency
		amount   int
	}{
		{models.CurrencyCredits, delta.Credits},
		{models.CurrencyGems, delta.Gems},
		{models.CurrencyExperience, delta.Experience},
	}
	for _, a := range amounts {
		if a.amount == 0 {
			continue
		}
		entry := &models.LedgerEntry{
			UserID:        userID,
			Currency:      a.currency,
			Amount:        a.amount,
			Reason:        reason,
			ReferenceType: refType,
			ReferenceID:   refID,
		}
		if err := ledger.Insert(ctx, exec, entry); err != nil {
			return fmt.Errorf("ledger %s for user %d: %w", reason, userID, handleRepositoryError(err))
		}
	}
	return nil
}
