package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/sinclaire-white/vehicle-renting-server/internal/api/middleware"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
)

func NewRouter(
	authH *AuthHandlers,
	vehicleH *VehicleHandlers,
	bookingH *BookingHandlers,
	accountH *AccountHandlers,
	jwtSecret string,
	redisClient *redis.Client,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", authH.SignUp)
		r.Post("/auth/signin", authH.SignIn)

		r.Route("/vehicles", func(r chi.Router) {
			// Anyone can browse the inventory; only admins mutate it.
			r.Get("/", vehicleH.List)
			r.Get("/{vehicleId}", vehicleH.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(jwtSecret))
				r.Use(middleware.RequireRole(account.RoleAdmin))
				r.Post("/", vehicleH.Create)
				r.Put("/{vehicleId}", vehicleH.Update)
				r.Delete("/{vehicleId}", vehicleH.Delete)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Get("/profile", accountH.Profile)
			r.With(middleware.RequireRole(account.RoleAdmin)).Get("/", accountH.List)
			r.Put("/{userId}", accountH.Update)
			r.With(middleware.RequireRole(account.RoleAdmin)).Delete("/{userId}", accountH.Delete)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.With(middleware.Idempotency(redisClient)).Post("/", bookingH.Create)
			r.Get("/", bookingH.List)
			r.Put("/{bookingId}", bookingH.UpdateStatus)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
