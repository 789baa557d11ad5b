package controllers

import (
	"net/http"

	"github.com/dmejiasc/comandas-backend/api/responses"
	"github.com/dmejiasc/comandas-backend/internal/tickets"
	"github.com/dmejiasc/comandas-backend/pkg/config"
	pkgerrors "github.com/dmejiasc/comandas-backend/pkg/errors"
	"github.com/dmejiasc/comandas-backend/pkg/logger"
)

// SeedDemo loads the demo dataset. Disabled outright in production.
func SeedDemo(cfg *config.Config, svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.App.IsProd() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "demo seed disabled in production"))
			return
		}

		seeded, err := svc.SeedDemo(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]int{"tickets_seeded": seeded})
	}
}
