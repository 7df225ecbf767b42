package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// ResetGameCommand abandons the current session and starts a fresh one
type ResetGameCommand struct{}

type ResetGameResponse struct {
	PreviousGameID string
	GameID         string
	Balance        float64
}

type ResetGameHandler struct {
	engine *game.Engine
}

func NewResetGameHandler(engine *game.Engine) *ResetGameHandler {
	return &ResetGameHandler{engine: engine}
}

func (h *ResetGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ResetGameCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ResetGameCommand")
	}

	previous := h.engine.GameID().String()
	h.engine.Reset()
	snap := h.engine.Snapshot()

	return &ResetGameResponse{
		PreviousGameID: previous,
		GameID:         snap.GameID,
		Balance:        snap.Balance,
	}, nil
}
