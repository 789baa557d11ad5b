package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmejiasc/comandas-backend/api/controllers"
	"github.com/dmejiasc/comandas-backend/api/middleware"
	"github.com/dmejiasc/comandas-backend/internal/auth"
	"github.com/dmejiasc/comandas-backend/internal/tickets"
	"github.com/dmejiasc/comandas-backend/pkg/auth/session"
	"github.com/dmejiasc/comandas-backend/pkg/config"
	"github.com/dmejiasc/comandas-backend/pkg/enums"
	"github.com/dmejiasc/comandas-backend/pkg/logger"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          controllers.Pinger
	SessionChecker session.AccessSessionChecker
	AuthService    auth.Service
	TicketService  tickets.Service
	Metrics        prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.Login(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

			r.Post("/auth/logout", controllers.Logout(deps.AuthService, logg))
			r.Get("/auth/me", controllers.Me(deps.AuthService, logg))

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", controllers.ListTickets(deps.TicketService, logg))
				r.Get("/{ticketId}", controllers.TicketDetail(deps.TicketService, logg))
				r.Get("/{ticketId}/events", controllers.TicketEvents(deps.TicketService, logg))

				mutating := middleware.RequireRoles(logg,
					string(enums.UserRoleAdmin),
					string(enums.UserRoleOperator),
				)
				r.With(mutating).Patch("/{ticketId}/items/{itemId}/status", controllers.UpdateItemStatus(deps.TicketService, logg))
				r.With(mutating).Post("/{ticketId}/items/{itemId}/cancel", controllers.CancelItem(deps.TicketService, logg))
				r.With(mutating).Post("/{ticketId}/items/{itemId}/replace", controllers.ReplaceItem(deps.TicketService, logg))
				r.With(mutating).Post("/{ticketId}/print", controllers.PrintTicket(deps.TicketService, logg))
			})

			r.With(middleware.RequireRoles(logg, string(enums.UserRoleAdmin))).
				Post("/dev/seed-demo", controllers.SeedDemo(cfg, deps.TicketService, logg))
		})
	})

	return r
}
