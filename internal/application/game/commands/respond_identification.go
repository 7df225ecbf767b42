package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// RespondToIdentificationCommand confirms or denies a drone's pending report
type RespondToIdentificationCommand struct {
	DroneID int
	Confirm bool
}

type RespondToIdentificationHandler struct {
	engine *game.Engine
}

func NewRespondToIdentificationHandler(engine *game.Engine) *RespondToIdentificationHandler {
	return &RespondToIdentificationHandler{engine: engine}
}

func (h *RespondToIdentificationHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RespondToIdentificationCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RespondToIdentificationCommand")
	}

	verdict, err := h.engine.RespondToIdentification(cmd.DroneID, cmd.Confirm)
	if err != nil {
		return nil, err
	}
	return toVerdictDTO(verdict, h.engine.Snapshot().Balance), nil
}
