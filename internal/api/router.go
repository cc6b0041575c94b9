package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship-go/internal/api/events"
	"github.com/mcoot/battleship-go/internal/api/handler"
	"github.com/mcoot/battleship-go/internal/api/middleware"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/services/match"
	"github.com/mcoot/battleship-go/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	MatchController *match.Controller
	StatsService    *stats.Service
	HubManager      *events.HubManager // Optional, enables match event websockets
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	matchHandler := handler.NewMatchHandler(cfg.MatchController, cfg.HubManager, cfg.Logger)
	statsHandler := handler.NewStatsHandler(cfg.StatsService)
	simulationHandler := handler.NewSimulationHandler(cfg.MatchController)

	// Create middleware
	identityMiddleware := middleware.Identity()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Public routes
	api.HandleFunc("/health", healthHandler(cfg.MatchController, cfg.HubManager)).Methods(http.MethodGet)
	api.HandleFunc("/strategies", handler.ListStrategies).Methods(http.MethodGet)
	api.HandleFunc("/simulations", simulationHandler.Create).Methods(http.MethodPost)

	// Match routes (all require a user)
	matches := api.PathPrefix("/matches").Subrouter()
	matches.Use(identityMiddleware)
	matches.HandleFunc("", matchHandler.Create).Methods(http.MethodPost)
	matches.HandleFunc("/{id}", matchHandler.Get).Methods(http.MethodGet)
	matches.HandleFunc("/{id}/moves", matchHandler.Fire).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/events", matchHandler.Events).Methods(http.MethodGet)

	// User routes
	users := api.PathPrefix("/users").Subrouter()
	users.Use(identityMiddleware)
	users.HandleFunc("/me/stats", statsHandler.GetMine).Methods(http.MethodGet)

	return r
}

func healthHandler(controller *match.Controller, hubs *events.HubManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := response.Health{
			Status:        "ok",
			ActiveMatches: controller.ActiveMatches(),
		}
		if hubs != nil {
			resp.EventHubs = hubs.HubCount()
		}
		response.JSON(w, http.StatusOK, resp)
	}
}
