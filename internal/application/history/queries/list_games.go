package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
)

// ListGamesQuery lists recent game sessions, newest first
type ListGamesQuery struct {
	Limit int // 0 uses the default of 20
}

type ListGamesResponse struct {
	Games []*GameDTO
}

type ListGamesHandler struct {
	history round.HistoryRepository
}

func NewListGamesHandler(history round.HistoryRepository) *ListGamesHandler {
	return &ListGamesHandler{history: history}
}

func (h *ListGamesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListGamesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListGamesQuery")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}

	games, err := h.history.ListGames(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	dtos := make([]*GameDTO, len(games))
	for i, g := range games {
		dtos[i] = toGameDTO(g)
	}
	return &ListGamesResponse{Games: dtos}, nil
}
