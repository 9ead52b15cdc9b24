package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pitchside/matchday/handlers"
	"github.com/pitchside/matchday/middleware"
	"github.com/pitchside/matchday/models"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	gameHandler *handlers.GameHandler,
	scheduleHandler *handlers.ScheduleHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Get("/ws/games/{gameID}", webSocketHandler.ServeWs)

	router.Route("/games/{gameID}", func(r chi.Router) {
		// Public read endpoints for the game page.
		r.Get("/", gameHandler.Detail)
		r.Get("/matches", matchHandler.List)
		r.Get("/standings", tournamentHandler.Standings)
		r.Get("/rounds/current", tournamentHandler.RoundState)

		// Admin-only mutations.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Post("/schedule/preview", scheduleHandler.Preview)
			r.Post("/schedule", scheduleHandler.Save)
			r.Post("/rounds/{roundNumber}/submit", tournamentHandler.SubmitRound)
			r.Post("/finalize", tournamentHandler.Finalize)
			r.Post("/refinalize", tournamentHandler.ReFinalize)
			r.Post("/matches", matchHandler.RecordManual)
			r.Delete("/matches/{matchID}", matchHandler.Delete)
			r.Post("/cover", gameHandler.UploadCover)
			r.Post("/players/sync", gameHandler.SyncPlayers)
		})
	})
}
