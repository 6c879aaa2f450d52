package controllers

import (
	"context"
	"net/http"

	"student-rank/models"
	"student-rank/utils"
)

type FilterController struct{}

func (fc FilterController) GetFilters(s StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.FilterOptions(r.Context())
		if err != nil {
			utils.Logger(r).WithError(err).Error("Error fetching filter options")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch filter options"})
			return
		}
		utils.ResponseJSON(w, opts)
	}
}

// Pinger is satisfied by *store.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct{}

func (hc HealthController) Health(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := p.Ping(r.Context()); err != nil {
			utils.Logger(r).WithError(err).Warn("health check failed")
			utils.RespondWithError(w, http.StatusServiceUnavailable, models.Error{Message: "Database unavailable"})
			return
		}
		utils.ResponseJSON(w, map[string]string{"status": "ok"})
	}
}
