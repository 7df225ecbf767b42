package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/common"
	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// StartRoundCommand leaves the interlude and begins the next round
type StartRoundCommand struct{}

type StartRoundResponse struct {
	GameID           string
	Round            int
	WantedCount      int
	RequiredArrests  int
	RemainingSeconds float64
}

type StartRoundHandler struct {
	engine *game.Engine
}

func NewStartRoundHandler(engine *game.Engine) *StartRoundHandler {
	return &StartRoundHandler{engine: engine}
}

func (h *StartRoundHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*StartRoundCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartRoundCommand")
	}

	if err := h.engine.StartNextRound(); err != nil {
		return nil, err
	}

	snap := h.engine.Snapshot()
	common.LoggerFromContext(ctx).Debug("round started via command", "round", snap.Round)
	return &StartRoundResponse{
		GameID:           snap.GameID,
		Round:            snap.Round,
		WantedCount:      len(snap.Wanted),
		RequiredArrests:  snap.RequiredArrests,
		RemainingSeconds: snap.RemainingSeconds,
	}, nil
}
