package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mcoot/battleship-go/internal/api/request"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/match"
)

// Board size limits for simulations
const (
	MinSimulationBoardSize = model.MinBoardSize
	MaxSimulationBoardSize = model.MaxBoardSize
)

// SimulationHandler runs headless bot matches
type SimulationHandler struct {
	controller *match.Controller
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(controller *match.Controller) *SimulationHandler {
	return &SimulationHandler{controller: controller}
}

// Create handles POST /api/v1/simulations
func (h *SimulationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	cfg := h.controller.Config()
	if req.BoardSize != 0 {
		if req.BoardSize < MinSimulationBoardSize || req.BoardSize > MaxSimulationBoardSize {
			WriteError(w, NewInvalidRequestError(fmt.Sprintf(
				"board_size must be between %d and %d", MinSimulationBoardSize, MaxSimulationBoardSize)))
			return
		}
		cfg.BoardSize = req.BoardSize
	}

	stat, err := h.controller.Simulate(r.Context(), match.SimulationRequest{
		StrategyA: req.StrategyA,
		StrategyB: req.StrategyB,
		Config:    cfg,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SimulationFromModel(stat))
}

// ListStrategies handles GET /api/v1/strategies
func ListStrategies(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Strategies())
}
