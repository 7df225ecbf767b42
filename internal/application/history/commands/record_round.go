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

// RecordRoundCommand stores a finished round and folds it into the game summary
type RecordRoundCommand struct {
	GameID          string
	Round           int
	Arrests         int
	TotalSuspects   int
	RequiredArrests int
	Balance         float64
	Reason          string // EndReason string form; "NONE" when the game continues
	EndedAt         time.Time
}

type RecordRoundResponse struct {
	GameOver bool
}

type RecordRoundHandler struct {
	history round.HistoryRepository
}

func NewRecordRoundHandler(history round.HistoryRepository) *RecordRoundHandler {
	return &RecordRoundHandler{history: history}
}

func (h *RecordRoundHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RecordRoundCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordRoundCommand")
	}

	gameID, err := shared.NewGameIDFromString(cmd.GameID)
	if err != nil {
		return nil, fmt.Errorf("invalid game ID: %w", err)
	}
	if cmd.Round < 1 {
		return nil, shared.NewValidationError("round", "must be at least 1")
	}
	reason, err := round.ParseEndReason(cmd.Reason)
	if err != nil {
		return nil, err
	}

	record := &round.RoundRecord{
		GameID:          gameID,
		Round:           cmd.Round,
		Arrests:         cmd.Arrests,
		TotalSuspects:   cmd.TotalSuspects,
		RequiredArrests: cmd.RequiredArrests,
		Balance:         cmd.Balance,
		Reason:          reason,
		EndedAt:         cmd.EndedAt,
	}

	game, err := h.history.FindGame(ctx, gameID)
	if err != nil {
		var notFound *shared.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to look up game: %w", err)
		}
		// Journaling started mid-game
		game = &round.GameRecord{ID: gameID, StartedAt: cmd.EndedAt}
		if err := h.history.SaveGame(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to save game: %w", err)
		}
	}

	if err := h.history.AppendRound(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append round: %w", err)
	}

	game.ApplyRound(record)
	if err := h.history.SaveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return &RecordRoundResponse{GameOver: game.IsFinished()}, nil
}
