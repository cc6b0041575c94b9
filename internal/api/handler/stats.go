package handler

import (
	"net/http"

	"github.com/mcoot/battleship-go/internal/api/middleware"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/services/stats"
)

// StatsHandler handles user statistics endpoints
type StatsHandler struct {
	service *stats.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service *stats.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetMine handles GET /api/v1/users/me/stats
func (h *StatsHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())

	summary, records, err := h.service.ForUser(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserStatsFromModel(summary, records))
}
