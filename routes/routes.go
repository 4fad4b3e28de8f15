package routes

import (
	"net/http"

	"github.com/athlos-fc/academy-system/handlers"
	"github.com/athlos-fc/academy-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes wires every handler into the router. Public surface: coach
// sign-in, registration submission, and upload authorization for the public
// form. Everything else sits behind the coach allow-list.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	coachEmails []string,
	corsAllowedOrigins []string,
	authHandler *handlers.AuthHandler,
	registrationHandler *handlers.RegistrationHandler,
	playerHandler *handlers.PlayerHandler,
	sessionHandler *handlers.SessionHandler,
	uploadHandler *handlers.UploadHandler,
	wsHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireCoach := middleware.RequireCoach(jwtSecret, coachEmails)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Post("/auth/signin", authHandler.SignIn)

	router.Route("/registrations", func(r chi.Router) {
		r.Post("/", registrationHandler.Submit)

		r.Group(func(r chi.Router) {
			r.Use(requireCoach)
			r.Get("/", registrationHandler.List)
			r.Get("/{id}", registrationHandler.Get)
			r.Post("/{id}/approve", registrationHandler.Approve)
			r.Delete("/{id}", registrationHandler.Reject)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Use(requireCoach)
		r.Post("/", playerHandler.Create)
		r.Get("/", playerHandler.List)
	})

	router.Route("/sessions", func(r chi.Router) {
		r.Use(requireCoach)
		r.Post("/", sessionHandler.Create)
		r.Get("/", sessionHandler.List)
		r.Get("/{id}", sessionHandler.Get)
		r.Put("/{id}", sessionHandler.SetAttendees)
	})

	router.Route("/uploads", func(r chi.Router) {
		r.Post("/presigned", uploadHandler.Presign)

		r.Group(func(r chi.Router) {
			r.Use(requireCoach)
			r.Get("/download", uploadHandler.Download)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(requireCoach)
		r.Get("/ws/dashboard", wsHandler.ServeWs)
	})
}
