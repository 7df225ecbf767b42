package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/application/mediator"
	"github.com/andrescamacho/dronewatch-go/internal/domain/ledger"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// GetProfitLossQuery generates a profit & loss statement for one game
type GetProfitLossQuery struct {
	GameID string
	// Round restricts the statement to a single round when set
	Round *int
}

// GetProfitLossResponse represents the profit & loss statement result
type GetProfitLossResponse struct {
	Period           string
	TotalRevenue     float64
	TotalExpenses    float64
	NetProfit        float64
	RevenueBreakdown map[string]float64 // category -> amount
	ExpenseBreakdown map[string]float64 // category -> amount
	RoundNet         map[int]float64    // round -> net amount
}

// GetProfitLossHandler handles the GetProfitLoss query
type GetProfitLossHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetProfitLossHandler creates a new GetProfitLossHandler
func NewGetProfitLossHandler(transactionRepo ledger.TransactionRepository) *GetProfitLossHandler {
	return &GetProfitLossHandler{transactionRepo: transactionRepo}
}

// Handle executes the GetProfitLoss query
func (h *GetProfitLossHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetProfitLossQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProfitLossQuery")
	}

	gameID, err := shared.NewGameIDFromString(query.GameID)
	if err != nil {
		return nil, fmt.Errorf("invalid game ID: %w", err)
	}

	opts := ledger.QueryOptions{
		Round:   query.Round,
		Limit:   0, // No limit - get all transactions
		OrderBy: "timestamp ASC",
	}

	transactions, err := h.transactionRepo.FindByGame(ctx, gameID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	return h.calculateProfitLoss(query, transactions), nil
}

func (h *GetProfitLossHandler) calculateProfitLoss(
	query *GetProfitLossQuery,
	transactions []*ledger.Transaction,
) *GetProfitLossResponse {
	revenueBreakdown := make(map[string]float64)
	expenseBreakdown := make(map[string]float64)
	roundNet := make(map[int]float64)
	totalRevenue := 0.0
	totalExpenses := 0.0

	for _, tx := range transactions {
		category := tx.Category().String()
		amount := tx.Amount()
		roundNet[tx.Round()] += amount

		if tx.IsIncome() {
			revenueBreakdown[category] += amount
			totalRevenue += amount
		} else {
			// Expenses are reported as positive values
			expenseBreakdown[category] += -amount
			totalExpenses += -amount
		}
	}

	period := "all rounds"
	if query.Round != nil {
		period = fmt.Sprintf("round %d", *query.Round)
	}

	return &GetProfitLossResponse{
		Period:           period,
		TotalRevenue:     totalRevenue,
		TotalExpenses:    totalExpenses,
		NetProfit:        totalRevenue - totalExpenses,
		RevenueBreakdown: revenueBreakdown,
		ExpenseBreakdown: expenseBreakdown,
		RoundNet:         roundNet,
	}
}
