package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// GetGameHistoryQuery returns one game with its rounds in play order
type GetGameHistoryQuery struct {
	GameID string
}

type GetGameHistoryResponse struct {
	Game   *GameDTO
	Rounds []*RoundDTO
}

type GetGameHistoryHandler struct {
	history round.HistoryRepository
}

func NewGetGameHistoryHandler(history round.HistoryRepository) *GetGameHistoryHandler {
	return &GetGameHistoryHandler{history: history}
}

func (h *GetGameHistoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetGameHistoryQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetGameHistoryQuery")
	}

	gameID, err := shared.NewGameIDFromString(query.GameID)
	if err != nil {
		return nil, fmt.Errorf("invalid game ID: %w", err)
	}

	game, err := h.history.FindGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	rounds, err := h.history.ListRounds(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	dtos := make([]*RoundDTO, len(rounds))
	for i, r := range rounds {
		dtos[i] = toRoundDTO(r)
	}
	return &GetGameHistoryResponse{Game: toGameDTO(game), Rounds: dtos}, nil
}
