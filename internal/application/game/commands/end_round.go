package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// EndRoundCommand ends the running round now, with the normal evaluation
type EndRoundCommand struct{}

type EndRoundResponse struct {
	Round           int
	Arrests         int
	TotalSuspects   int
	RequiredArrests int
	Reason          string
	NextState       string
	GameOver        bool
	Balance         float64
}

type EndRoundHandler struct {
	engine *game.Engine
}

func NewEndRoundHandler(engine *game.Engine) *EndRoundHandler {
	return &EndRoundHandler{engine: engine}
}

func (h *EndRoundHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*EndRoundCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *EndRoundCommand")
	}

	result, err := h.engine.EndRoundEarly()
	if err != nil {
		return nil, err
	}

	return &EndRoundResponse{
		Round:           result.Round,
		Arrests:         result.Arrests,
		TotalSuspects:   result.TotalSuspects,
		RequiredArrests: result.RequiredArrests,
		Reason:          result.Reason.String(),
		NextState:       result.NextState.String(),
		GameOver:        result.GameOver(),
		Balance:         h.engine.Snapshot().Balance,
	}, nil
}
