package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/copapymes/league-system/handlers"
	"github.com/copapymes/league-system/middleware"
	"github.com/copapymes/league-system/models"
)

type Config struct {
	JWTSecret   []byte
	CORSOrigins []string

	HealthHandler       *handlers.HealthHandler
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	TeamHandler         *handlers.TeamHandler
	VenueHandler        *handlers.VenueHandler
	DivisionHandler     *handlers.DivisionHandler
	TournamentHandler   *handlers.TournamentHandler
	RegistrationHandler *handlers.RegistrationHandler
	MatchHandler        *handlers.MatchHandler
	PrizeHandler        *handlers.PrizeHandler
	WebSocketHandler    *handlers.WebSocketHandler
}

func InitRoutes(cfg Config) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(cfg.JWTSecret)
	adminOnly := middleware.Authorize(models.RoleAdministrator)
	management := middleware.Authorize(models.RoleAdministrator, models.RoleManager)
	results := middleware.Authorize(models.RoleAdministrator, models.RoleReceptionist)

	router.Get("/health", cfg.HealthHandler.Handler)

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/openapi.json"),
	))
	router.Get("/docs/openapi.json", handlers.OpenAPIHandler)

	router.Post("/auth/login", cfg.AuthHandler.LoginHandler)
	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/auth/profile", cfg.AuthHandler.ProfileHandler)
		r.Post("/auth/change-password", cfg.AuthHandler.ChangePasswordHandler)
		// Account creation; the handler limits managers to player accounts.
		r.With(management).Post("/auth/register", cfg.UserHandler.CreateHandler)
	})

	router.Route("/users", func(r chi.Router) {
		r.Use(authenticate)

		r.Group(func(r chi.Router) {
			r.Use(management)

			r.Post("/", cfg.UserHandler.CreateHandler)
			r.Get("/", cfg.UserHandler.ListHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Get("/stats", cfg.UserHandler.StatsHandler)
			r.Get("/{userID}", cfg.UserHandler.GetByIDHandler)
			r.Put("/{userID}", cfg.UserHandler.UpdateHandler)
			r.Delete("/{userID}", cfg.UserHandler.DeleteHandler)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", cfg.TeamHandler.ListHandler)
		r.Get("/{teamID}", cfg.TeamHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(management)

			r.Post("/", cfg.TeamHandler.CreateHandler)
			r.Put("/{teamID}", cfg.TeamHandler.UpdateHandler)
			r.Patch("/{teamID}/active", cfg.TeamHandler.SetActiveHandler)
			r.Post("/{teamID}/crest", cfg.TeamHandler.UploadCrestHandler)
			r.Delete("/{teamID}", cfg.TeamHandler.DeleteHandler)
		})
	})

	router.Route("/venues", func(r chi.Router) {
		r.Get("/", cfg.VenueHandler.ListHandler)
		r.Get("/{venueID}", cfg.VenueHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(management)

			r.Post("/", cfg.VenueHandler.CreateHandler)
			r.Put("/{venueID}", cfg.VenueHandler.UpdateHandler)
			r.Post("/{venueID}/photo", cfg.VenueHandler.UploadPhotoHandler)
			r.Delete("/{venueID}", cfg.VenueHandler.DeleteHandler)
		})
	})

	router.Route("/divisions", func(r chi.Router) {
		r.Get("/", cfg.DivisionHandler.ListHandler)
		r.Get("/{divisionID}", cfg.DivisionHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(management)

			r.Post("/", cfg.DivisionHandler.CreateHandler)
			r.Put("/{divisionID}", cfg.DivisionHandler.UpdateHandler)
			r.Delete("/{divisionID}", cfg.DivisionHandler.DeleteHandler)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", cfg.TournamentHandler.ListHandler)
		r.Get("/{tournamentID}", cfg.TournamentHandler.GetByIDHandler)
		r.Get("/{tournamentID}/registrations", cfg.RegistrationHandler.ListHandler)
		r.Get("/{tournamentID}/prizes", cfg.PrizeHandler.ListByTournamentHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(management)

			r.Post("/", cfg.TournamentHandler.CreateHandler)
			r.Put("/{tournamentID}", cfg.TournamentHandler.UpdateHandler)
			r.Delete("/{tournamentID}", cfg.TournamentHandler.DeleteHandler)

			// Lifecycle transitions.
			r.Post("/{tournamentID}/open-registration", cfg.TournamentHandler.OpenRegistrationHandler)
			r.Post("/{tournamentID}/close-registration", cfg.TournamentHandler.CloseRegistrationHandler)

			r.Post("/{tournamentID}/registrations", cfg.RegistrationHandler.RegisterHandler)
		})
	})

	router.Route("/registrations", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(management)

		r.Patch("/{registrationID}", cfg.RegistrationHandler.UpdateStatusHandler)
		r.Delete("/{registrationID}", cfg.RegistrationHandler.DeleteHandler)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", cfg.MatchHandler.ListHandler)
		r.Get("/{matchID}", cfg.MatchHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(management)

			r.Post("/", cfg.MatchHandler.CreateHandler)
			r.Delete("/{matchID}", cfg.MatchHandler.DeleteHandler)
		})

		// Result recording is open to receptionists as well.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(results)

			r.Patch("/{matchID}", cfg.MatchHandler.UpdateHandler)
		})
	})

	router.Route("/prizes", func(r chi.Router) {
		r.Get("/", cfg.PrizeHandler.ListHandler)
		r.Get("/{prizeID}", cfg.PrizeHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(management)

			r.Post("/", cfg.PrizeHandler.CreateHandler)
			r.Put("/{prizeID}", cfg.PrizeHandler.UpdateHandler)
			r.Delete("/{prizeID}", cfg.PrizeHandler.DeleteHandler)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", cfg.WebSocketHandler.ServeWs)

	return router
}
