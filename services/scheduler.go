package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

const (
	ReaperInterval = 1 * time.Minute
	ReaperGrace    = 1 * time.Minute
	reaperTimeout  = 30 * time.Second
)

// StaleMatchReaper periodically cancels WAITING arena matches whose queue
// entry no longer exists, for example after a restart dropped the queue.
type StaleMatchReaper struct {
	sched     gocron.Scheduler
	arena     ArenaService
	olderThan time.Duration
	logger    zerolog.Logger
}

// NewStaleMatchReaper cancels matches left WAITING for longer than
// queueTimeout plus a grace period.
func NewStaleMatchReaper(arena ArenaService, queueTimeout time.Duration, logger zerolog.Logger) (*StaleMatchReaper, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	r := &StaleMatchReaper{
		sched:     sched,
		arena:     arena,
		olderThan: queueTimeout + ReaperGrace,
		logger:    logger.With().Str("component", "stale_match_reaper").Logger(),
	}

	_, err = sched.NewJob(
		gocron.DurationJob(ReaperInterval),
		gocron.NewTask(r.run),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register stale match job: %w", err)
	}
	return r, nil
}

func (r *StaleMatchReaper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), reaperTimeout)
	defer cancel()

	if _, err := r.arena.CancelStaleMatches(ctx, r.olderThan); err != nil {
		r.logger.Error().Err(err).Msg("stale match sweep failed")
	}
}

func (r *StaleMatchReaper) Start() {
	r.sched.Start()
	r.logger.Info().Dur("interval", ReaperInterval).Dur("older_than", r.olderThan).Msg("stale match reaper started")
}

func (r *StaleMatchReaper) Stop() error {
	return r.sched.Shutdown()
}
