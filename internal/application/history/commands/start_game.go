package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// StartGameCommand registers a game session in the history. Repeats are no-ops.
type StartGameCommand struct {
	GameID    string
	StartedAt time.Time
	Balance   float64
}

type StartGameResponse struct {
	Created bool
}

type StartGameHandler struct {
	history round.HistoryRepository
}

func NewStartGameHandler(history round.HistoryRepository) *StartGameHandler {
	return &StartGameHandler{history: history}
}

func (h *StartGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*StartGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartGameCommand")
	}

	gameID, err := shared.NewGameIDFromString(cmd.GameID)
	if err != nil {
		return nil, fmt.Errorf("invalid game ID: %w", err)
	}

	_, err = h.history.FindGame(ctx, gameID)
	if err == nil {
		return &StartGameResponse{Created: false}, nil
	}
	var notFound *shared.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, fmt.Errorf("failed to look up game: %w", err)
	}

	record := &round.GameRecord{
		ID:           gameID,
		StartedAt:    cmd.StartedAt,
		FinalBalance: cmd.Balance,
	}
	if err := h.history.SaveGame(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}
	return &StartGameResponse{Created: true}, nil
}
