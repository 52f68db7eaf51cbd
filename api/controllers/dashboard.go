package controllers

import (
	"net/http"

	"github.com/fitnesspro/fitnesspro-backend/api/responses"
	"github.com/fitnesspro/fitnesspro-backend/internal/dashboard"
	"github.com/fitnesspro/fitnesspro-backend/pkg/logger"
)

// DashboardStats returns the aggregate counts shown on the admin landing page.
func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
