package ledger

import (
	"context"

	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// TransactionRepository defines persistence operations for the ledger journal
type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) error

	FindByID(ctx context.Context, id TransactionID, gameID shared.GameID) (*Transaction, error)

	// FindByGame retrieves transactions for a game with optional filtering
	FindByGame(ctx context.Context, gameID shared.GameID, opts QueryOptions) ([]*Transaction, error)

	CountByGame(ctx context.Context, gameID shared.GameID, opts QueryOptions) (int, error)
}

// QueryOptions defines filtering and pagination options for transaction queries
type QueryOptions struct {
	Round           *int
	Category        *Category
	TransactionType *TransactionType

	// Pagination
	Limit  int
	Offset int

	// Sorting
	OrderBy string // "timestamp ASC" or "timestamp DESC" (default DESC)
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Limit:   50,
		Offset:  0,
		OrderBy: "timestamp DESC",
	}
}
