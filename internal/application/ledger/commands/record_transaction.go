package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/dronewatch-go/internal/adapters/metrics"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
	"github.com/andrescamacho/dronewatch-go/internal/domain/ledger"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// RecordTransactionCommand journals one ledger mutation
type RecordTransactionCommand struct {
	GameID          string
	Round           int
	TransactionType string
	Amount          float64 // Positive for credits, negative for debits
	BalanceBefore   float64
	BalanceAfter    float64
	Description     string
	Timestamp       *time.Time // Optional: defaults to the handler clock
}

// RecordTransactionResponse represents the result of recording a transaction
type RecordTransactionResponse struct {
	TransactionID string
	Timestamp     time.Time
}

// RecordTransactionHandler handles the RecordTransaction command
type RecordTransactionHandler struct {
	transactionRepo ledger.TransactionRepository
	clock           shared.Clock
}

// NewRecordTransactionHandler creates a new RecordTransactionHandler
func NewRecordTransactionHandler(
	transactionRepo ledger.TransactionRepository,
	clock shared.Clock,
) *RecordTransactionHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &RecordTransactionHandler{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Handle executes the RecordTransaction command
func (h *RecordTransactionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RecordTransactionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordTransactionCommand")
	}

	transactionType, err := ledger.ParseTransactionType(cmd.TransactionType)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction type: %w", err)
	}

	gameID, err := shared.NewGameIDFromString(cmd.GameID)
	if err != nil {
		return nil, fmt.Errorf("invalid game ID: %w", err)
	}

	timestamp := h.clock.Now()
	if cmd.Timestamp != nil {
		timestamp = *cmd.Timestamp
	}

	transaction, err := ledger.NewTransaction(
		gameID,
		cmd.Round,
		timestamp,
		transactionType,
		cmd.Amount,
		cmd.BalanceBefore,
		cmd.BalanceAfter,
		cmd.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := h.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	metrics.RecordTransaction(
		transaction.TransactionType().String(),
		transaction.Category().String(),
		transaction.Amount(),
		transaction.BalanceAfter(),
	)

	return &RecordTransactionResponse{
		TransactionID: transaction.ID().String(),
		Timestamp:     transaction.Timestamp(),
	}, nil
}
