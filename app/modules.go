package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/Dosada05/pokearena/battle"
	"github.com/Dosada05/pokearena/brackets"
	"github.com/Dosada05/pokearena/config"
	"github.com/Dosada05/pokearena/db"
	"github.com/Dosada05/pokearena/handlers"
	"github.com/Dosada05/pokearena/logger"
	"github.com/Dosada05/pokearena/matchmaking"
	"github.com/Dosada05/pokearena/rarity"
	"github.com/Dosada05/pokearena/repositories"
	"github.com/Dosada05/pokearena/routes"
	"github.com/Dosada05/pokearena/services"
	"github.com/Dosada05/pokearena/storage"
	"github.com/Dosada05/pokearena/utils"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	ShutdownTimeout = 15 * time.Second
	readTimeout     = 10 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 120 * time.Second
)

var Module = fx.Options(
	config.Module,
	logger.Module,
	db.Module,
	// repos
	fx.Provide(repositories.NewPostgresTxManager),
	fx.Provide(repositories.NewPostgresProfileRepository),
	fx.Provide(repositories.NewPostgresRatingRepository),
	fx.Provide(repositories.NewPostgresLedgerRepository),
	fx.Provide(repositories.NewPostgresArenaMatchRepository),
	fx.Provide(repositories.NewPostgresTournamentRepository),
	fx.Provide(repositories.NewPostgresParticipantRepository),
	fx.Provide(repositories.NewPostgresTournamentMatchRepository),
	// domain
	fx.Provide(ProvideRand),
	fx.Provide(ProvideEngine),
	fx.Provide(ProvideRarity),
	fx.Provide(ProvideQueue),
	fx.Provide(ProvideArchive),
	fx.Provide(ProvideHub),
	fx.Provide(ProvideNotifier),
	// svc
	fx.Provide(ProvideArenaService),
	fx.Provide(ProvideTournamentService),
	fx.Provide(ProvideReaper),
	// http
	fx.Provide(ProvideHealthHandler),
	fx.Provide(handlers.NewArenaHandler),
	fx.Provide(handlers.NewTournamentHandler),
	fx.Provide(handlers.NewWebSocketHandler),
	fx.Provide(ProvideRouter),
	fx.Invoke(RegisterReaper),
	fx.Invoke(RegisterServer),
)

func ProvideRand() utils.Rand {
	return utils.NewTimeSeededRand()
}

func ProvideEngine(rng utils.Rand) *battle.Engine {
	return battle.NewEngine(battle.DefaultMoves, rng)
}

func ProvideRarity(rng utils.Rand) *rarity.Generator {
	return rarity.NewGenerator(rng)
}

// ProvideQueue closes the queue on stop so pending expiry timers do not fire
// against a closed database.
func ProvideQueue(lc fx.Lifecycle, cfg *config.Config) *matchmaking.Queue {
	q := matchmaking.NewQueue(cfg.QueueTimeout, nil)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			q.Close()
			return nil
		},
	})
	return q
}

func ProvideArchive(cfg *config.Config, log zerolog.Logger) (storage.BattleArchiver, error) {
	if !cfg.R2.Enabled() {
		log.Info().Msg("R2 not configured, battle logs will not be archived")
		return storage.NoopArchive{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := storage.NewR2Store(ctx, storage.R2Config{
		AccountID:       cfg.R2.AccountID,
		AccessKeyID:     cfg.R2.AccessKeyID,
		SecretAccessKey: cfg.R2.SecretAccessKey,
		BucketName:      cfg.R2.BucketName,
		PublicBaseURL:   cfg.R2.PublicBaseURL,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create battle archive: %w", err)
	}
	return storage.NewBattleArchive(store), nil
}

func ProvideHub(lc fx.Lifecycle, log zerolog.Logger) *brackets.Hub {
	hub := brackets.NewHub(log)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go hub.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return hub
}

func ProvideNotifier(hub *brackets.Hub) services.Notifier {
	return hub
}

type ArenaParams struct {
	fx.In

	Config   *config.Config
	Queue    *matchmaking.Queue
	Engine   *battle.Engine
	Tx       repositories.TxManager
	Profiles repositories.ProfileRepository
	Ratings  repositories.RatingRepository
	Matches  repositories.ArenaMatchRepository
	Ledger   repositories.LedgerRepository
	Archive  storage.BattleArchiver
	Notifier services.Notifier
	Rand     utils.Rand
	Logger   zerolog.Logger
}

func ProvideArenaService(p ArenaParams) services.ArenaService {
	return services.NewArenaService(
		services.ArenaConfig{MaxTurns: p.Config.BattleMaxTurns},
		services.ArenaDeps{
			Queue:    p.Queue,
			Engine:   p.Engine,
			Tx:       p.Tx,
			Profiles: p.Profiles,
			Ratings:  p.Ratings,
			Matches:  p.Matches,
			Ledger:   p.Ledger,
			Archive:  p.Archive,
			Notifier: p.Notifier,
			Rand:     p.Rand,
			Logger:   p.Logger,
		},
	)
}

type TournamentParams struct {
	fx.In

	Config       *config.Config
	Engine       *battle.Engine
	Tx           repositories.TxManager
	Tournaments  repositories.TournamentRepository
	Participants repositories.ParticipantRepository
	Matches      repositories.TournamentMatchRepository
	Profiles     repositories.ProfileRepository
	Ledger       repositories.LedgerRepository
	Archive      storage.BattleArchiver
	Notifier     services.Notifier
	Rand         utils.Rand
	Rarity       *rarity.Generator
	Logger       zerolog.Logger
}

func ProvideTournamentService(p TournamentParams) services.TournamentService {
	return services.NewTournamentService(
		services.TournamentConfig{MaxTurns: p.Config.BattleMaxTurns},
		services.TournamentDeps{
			Engine:       p.Engine,
			Tx:           p.Tx,
			Tournaments:  p.Tournaments,
			Participants: p.Participants,
			Matches:      p.Matches,
			Profiles:     p.Profiles,
			Ledger:       p.Ledger,
			Archive:      p.Archive,
			Notifier:     p.Notifier,
			Rand:         p.Rand,
			Rarity:       p.Rarity,
			Logger:       p.Logger,
		},
	)
}

func ProvideReaper(arena services.ArenaService, cfg *config.Config, log zerolog.Logger) (*services.StaleMatchReaper, error) {
	return services.NewStaleMatchReaper(arena, cfg.QueueTimeout, log)
}

func RegisterReaper(lc fx.Lifecycle, reaper *services.StaleMatchReaper) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			reaper.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			return reaper.Stop()
		},
	})
}

func ProvideHealthHandler(database *sql.DB) *handlers.HealthHandler {
	return handlers.NewHealthHandler(database)
}

type RouterParams struct {
	fx.In

	Config     *config.Config
	Logger     zerolog.Logger
	Health     *handlers.HealthHandler
	Arena      *handlers.ArenaHandler
	Tournament *handlers.TournamentHandler
	WebSocket  *handlers.WebSocketHandler
}

func ProvideRouter(p RouterParams) http.Handler {
	return routes.InitRoutes(
		routes.Options{
			JWTSecret:      []byte(p.Config.JWTSecretKey),
			AllowedOrigins: p.Config.CORSAllowedOrigins,
			Logger:         p.Logger,
		},
		routes.Handlers{
			Health:     p.Health,
			Arena:      p.Arena,
			Tournament: p.Tournament,
			WebSocket:  p.WebSocket,
		},
	)
}

func RegisterServer(lc fx.Lifecycle, handler http.Handler, cfg *config.Config, log zerolog.Logger, shutdowner fx.Shutdowner) {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error().Err(err).Msg("server failed")
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			log.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
