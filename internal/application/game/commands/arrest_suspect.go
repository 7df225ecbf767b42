package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
	"github.com/andrescamacho/dronewatch-go/internal/domain/crowd"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// ArrestSuspectCommand is the player's own arrest of a sighting, e.g. "P12"
type ArrestSuspectCommand struct {
	SightingID string
}

type ArrestSuspectHandler struct {
	engine *game.Engine
}

func NewArrestSuspectHandler(engine *game.Engine) *ArrestSuspectHandler {
	return &ArrestSuspectHandler{engine: engine}
}

func (h *ArrestSuspectHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ArrestSuspectCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ArrestSuspectCommand")
	}

	id, err := crowd.ParseSightingID(cmd.SightingID)
	if err != nil {
		return nil, shared.NewValidationError("sighting_id", err.Error())
	}

	verdict, err := h.engine.ArrestSuspect(id)
	if err != nil {
		return nil, err
	}
	return toVerdictDTO(verdict, h.engine.Snapshot().Balance), nil
}
