package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/game"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// GetRoundResultsQuery lists the finished rounds of the running session
type GetRoundResultsQuery struct{}

type RoundResultDTO struct {
	Round           int    `json:"round"`
	Arrests         int    `json:"arrests"`
	TotalSuspects   int    `json:"total_suspects"`
	RequiredArrests int    `json:"required_arrests"`
	Reason          string `json:"reason"`
	NextState       string `json:"next_state"`
}

type GetRoundResultsResponse struct {
	GameID  string
	Results []RoundResultDTO
}

type GetRoundResultsHandler struct {
	engine *game.Engine
}

func NewGetRoundResultsHandler(engine *game.Engine) *GetRoundResultsHandler {
	return &GetRoundResultsHandler{engine: engine}
}

func (h *GetRoundResultsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetRoundResultsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetRoundResultsQuery")
	}

	results := h.engine.Results()
	dtos := make([]RoundResultDTO, len(results))
	for i, r := range results {
		dtos[i] = RoundResultDTO{
			Round:           r.Round,
			Arrests:         r.Arrests,
			TotalSuspects:   r.TotalSuspects,
			RequiredArrests: r.RequiredArrests,
			Reason:          r.Reason.String(),
			NextState:       r.NextState.String(),
		}
	}
	return &GetRoundResultsResponse{GameID: h.engine.GameID().String(), Results: dtos}, nil
}
