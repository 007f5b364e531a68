package routes

import (
	"net/http"
	"time"

	_ "github.com/Dosada05/pokearena/docs"
	"github.com/Dosada05/pokearena/handlers"
	"github.com/Dosada05/pokearena/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

const requestTimeout = 30 * time.Second

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	Logger         zerolog.Logger
}

type Handlers struct {
	Health     *handlers.HealthHandler
	Arena      *handlers.ArenaHandler
	Tournament *handlers.TournamentHandler
	WebSocket  *handlers.WebSocketHandler
}

func InitRoutes(opts Options, h Handlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", h.Health.Health)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// sockets outlive the request timeout
	router.Route("/ws", func(r chi.Router) {
		r.Get("/tournaments/{tournamentID}", h.WebSocket.ServeTournamentWs)
		r.Get("/arena/matches/{matchID}", h.WebSocket.ServeArenaMatchWs)
	})

	authenticate := middleware.Authenticate(opts.JWTSecret)

	router.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(requestTimeout))

		r.Route("/arena", func(r chi.Router) {
			r.Get("/rankings", h.Arena.Rankings)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)

				r.Post("/queue", h.Arena.JoinQueue)
				r.Delete("/queue", h.Arena.LeaveQueue)
				r.Post("/matches/{matchID}/start", h.Arena.StartBattle)
				r.Post("/matches/{matchID}/complete", h.Arena.CompleteMatch)
				r.Get("/stats/{userID}", h.Arena.UserStats)
				r.Get("/me", h.Arena.Me)
			})
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", h.Tournament.ListHandler)
			r.Get("/{tournamentID}", h.Tournament.GetByIDHandler)
			r.Get("/{tournamentID}/bracket", h.Tournament.BracketHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)

				r.Post("/", h.Tournament.CreateHandler)
				r.Post("/{tournamentID}/join", h.Tournament.JoinHandler)
				r.Delete("/{tournamentID}/join", h.Tournament.LeaveHandler)
				r.Post("/{tournamentID}/start", h.Tournament.StartHandler)
				r.Post("/{tournamentID}/matches/{matchID}/result", h.Tournament.ReportResultHandler)
				r.Post("/{tournamentID}/matches/{matchID}/play", h.Tournament.PlayHandler)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"the requested resource could not be found"}` + "\n"))
	})

	return router
}
