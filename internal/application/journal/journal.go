package journal

import (
	"context"
	"log/slog"
	"sync"

	"github.com/andrescamacho/dronewatch-go/internal/application/common"
	"github.com/andrescamacho/dronewatch-go/internal/application/events"
	historyCmd "github.com/andrescamacho/dronewatch-go/internal/application/history/commands"
	ledgerCmd "github.com/andrescamacho/dronewatch-go/internal/application/ledger/commands"
	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
)

// Journal persists what a game session publishes on the bus: every ledger mutation
// becomes a transaction and every round boundary lands in the game history.
// Persistence failures are logged and never interrupt the game.
type Journal struct {
	mediator mediator.Mediator
	logger   *slog.Logger

	mu      sync.Mutex
	balance map[string]float64
}

func NewJournal(m mediator.Mediator, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = common.DiscardLogger()
	}
	return &Journal{mediator: m, logger: logger, balance: make(map[string]float64)}
}

// Attach subscribes the journal to balance changes and round boundaries
func (j *Journal) Attach(bus *events.Bus) *events.Subscription {
	return bus.Subscribe(j.handle,
		events.EventTypeBalanceChanged,
		events.EventTypeRoundStarted,
		events.EventTypeRoundEnded,
	)
}

func (j *Journal) handle(e events.Event) {
	switch payload := e.Payload.(type) {
	case events.BalanceChangedPayload:
		j.recordTransaction(e, payload)
	case events.RoundStartedPayload:
		j.startGame(e)
	case events.RoundEndedPayload:
		j.recordRound(e, payload)
	}
}

func (j *Journal) recordTransaction(e events.Event, payload events.BalanceChangedPayload) {
	j.mu.Lock()
	j.balance[e.GameID] = payload.After
	j.mu.Unlock()

	// Resets carry no transaction type; they start a new game rather than post to one
	if payload.TransactionType == "" || payload.Amount == 0 {
		return
	}

	timestamp := e.Timestamp
	cmd := &ledgerCmd.RecordTransactionCommand{
		GameID:          e.GameID,
		Round:           e.Round,
		TransactionType: payload.TransactionType,
		Amount:          payload.Amount,
		BalanceBefore:   payload.Before,
		BalanceAfter:    payload.After,
		Description:     payload.Description,
		Timestamp:       &timestamp,
	}

	if _, err := j.mediator.Send(j.context(), cmd); err != nil {
		j.logger.Warn("failed to journal transaction",
			"game_id", e.GameID,
			"type", payload.TransactionType,
			"amount", payload.Amount,
			"error", err)
	}
}

func (j *Journal) startGame(e events.Event) {
	j.mu.Lock()
	balance := j.balance[e.GameID]
	j.mu.Unlock()

	cmd := &historyCmd.StartGameCommand{
		GameID:    e.GameID,
		StartedAt: e.Timestamp,
		Balance:   balance,
	}
	if _, err := j.mediator.Send(j.context(), cmd); err != nil {
		j.logger.Warn("failed to record game start", "game_id", e.GameID, "error", err)
	}
}

func (j *Journal) recordRound(e events.Event, payload events.RoundEndedPayload) {
	cmd := &historyCmd.RecordRoundCommand{
		GameID:          e.GameID,
		Round:           payload.Round,
		Arrests:         payload.Arrests,
		TotalSuspects:   payload.TotalSuspects,
		RequiredArrests: payload.RequiredArrests,
		Balance:         payload.Balance,
		Reason:          payload.Reason,
		EndedAt:         e.Timestamp,
	}
	resp, err := j.mediator.Send(j.context(), cmd)
	if err != nil {
		j.logger.Warn("failed to record round", "game_id", e.GameID, "round", payload.Round, "error", err)
		return
	}
	if r, ok := resp.(*historyCmd.RecordRoundResponse); ok && r.GameOver {
		j.mu.Lock()
		delete(j.balance, e.GameID)
		j.mu.Unlock()
	}
}

func (j *Journal) context() context.Context {
	return common.WithLogger(context.Background(), j.logger)
}
