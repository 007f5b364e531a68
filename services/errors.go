package services

import "errors"

var (
	ErrNotFound = errors.New("requested resource not found")

	ErrValidationFailed   = errors.New("validation failed")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")
	ErrUserNotFound       = errors.New("user not found")

	// arena
	ErrNoActiveTeam            = errors.New("user has no active team")
	ErrTeamSizeMismatch        = errors.New("team size does not match")
	ErrAlreadyQueued           = errors.New("user is already in the matchmaking queue")
	ErrAlreadyInMatch          = errors.New("user already has an active match")
	ErrMatchmakingUnavailable  = errors.New("matchmaking is shutting down")
	ErrMatchNotFound           = errors.New("match not found")
	ErrMatchNotReady           = errors.New("match has no opponent yet")
	ErrInvalidWinner           = errors.New("winner must be one of the match players")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInsufficientFunds       = errors.New("insufficient funds")

	// tournaments
	ErrTournamentNotFound      = errors.New("tournament not found")
	ErrTournamentFull          = errors.New("tournament registration is full")
	ErrRegistrationNotOpen     = errors.New("tournament registration is not open")
	ErrRegistrationConflict    = errors.New("user is already registered for this tournament")
	ErrParticipantNotFound     = errors.New("participant registration not found")
	ErrNotEnoughParticipants   = errors.New("not enough participants to start the tournament")
	ErrTournamentNotInProgress = errors.New("tournament is not in progress")
	ErrMatchAlreadyFinished    = errors.New("match already has a result")
	ErrTournamentNameRequired  = errors.New("tournament name is required")
	ErrTournamentInvalidFormat = errors.New("invalid tournament format")
	ErrTournamentInvalidSize   = errors.New("tournament max participants must be between 2 and 256")
)
