package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship-go/internal/api/events"
	"github.com/mcoot/battleship-go/internal/api/middleware"
	"github.com/mcoot/battleship-go/internal/api/request"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/match"
)

// MatchHandler handles match endpoints
type MatchHandler struct {
	controller *match.Controller
	hubManager *events.HubManager
	logger     *slog.Logger
}

// NewMatchHandler creates a new match handler. hubManager may be nil, which
// disables the events endpoint.
func NewMatchHandler(controller *match.Controller, hubManager *events.HubManager, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{
		controller: controller,
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "match-handler")),
	}
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())

	var req request.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if !req.AutoPlace && len(req.Ships) == 0 {
		WriteError(w, NewInvalidRequestError("ships are required unless auto_place is set"))
		return
	}

	view, err := h.controller.CreateMatch(r.Context(), match.CreateRequest{
		UserID:         userID,
		Username:       req.UserName,
		VictoryMessage: req.VictoryMessage,
		Opponent:       req.Opponent,
		Layout:         req.Layout(),
		AutoPlace:      req.AutoPlace,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromView(view))
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())
	matchID := model.MatchID(mux.Vars(r)["id"])

	view, err := h.controller.GetMatch(r.Context(), matchID, userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromView(view))
}

// Fire handles POST /api/v1/matches/{id}/moves
func (h *MatchHandler) Fire(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())
	matchID := model.MatchID(mux.Vars(r)["id"])

	var req request.FireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	result, err := h.controller.Fire(r.Context(), matchID, userID, req.ToModel())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FireResponseFromResult(result))
}

// Events handles GET /api/v1/matches/{id}/events by upgrading to a websocket
func (h *MatchHandler) Events(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())
	matchID := model.MatchID(mux.Vars(r)["id"])

	if h.hubManager == nil {
		WriteError(w, NewInvalidRequestError("Events are not available"))
		return
	}

	// Only participants may watch
	if _, err := h.controller.GetMatch(r.Context(), matchID, userID); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(matchID)
	events.ServeWS(w, r, hub, userID, h.logger)
}
