package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// GetGameStateQuery reads a consistent snapshot of the running session
type GetGameStateQuery struct{}

type GetGameStateResponse struct {
	Snapshot game.Snapshot
}

type GetGameStateHandler struct {
	engine *game.Engine
}

func NewGetGameStateHandler(engine *game.Engine) *GetGameStateHandler {
	return &GetGameStateHandler{engine: engine}
}

func (h *GetGameStateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetGameStateQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetGameStateQuery")
	}
	return &GetGameStateResponse{Snapshot: h.engine.Snapshot()}, nil
}
