package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// TargetPlayerCommand triggers the betrayal immediately
type TargetPlayerCommand struct{}

type TargetPlayerResponse struct {
	Drones int
}

type TargetPlayerHandler struct {
	engine *game.Engine
}

func NewTargetPlayerHandler(engine *game.Engine) *TargetPlayerHandler {
	return &TargetPlayerHandler{engine: engine}
}

func (h *TargetPlayerHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*TargetPlayerCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *TargetPlayerCommand")
	}

	if err := h.engine.TargetPlayer(); err != nil {
		return nil, err
	}
	return &TargetPlayerResponse{Drones: len(h.engine.Snapshot().Drones)}, nil
}
