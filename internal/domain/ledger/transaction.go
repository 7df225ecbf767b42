package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

const balanceEpsilon = 1e-6

// Transaction is an immutable journal entry for one ledger mutation
type Transaction struct {
	id              TransactionID
	gameID          shared.GameID
	round           int
	timestamp       time.Time
	transactionType TransactionType
	category        Category
	amount          float64 // signed: positive credits, negative debits
	balanceBefore   float64
	balanceAfter    float64
	description     string
}

// NewTransaction creates a new transaction with validation
func NewTransaction(
	gameID shared.GameID,
	round int,
	timestamp time.Time,
	transactionType TransactionType,
	amount float64,
	balanceBefore float64,
	balanceAfter float64,
	description string,
) (*Transaction, error) {
	if gameID.IsZero() {
		return nil, &ErrInvalidTransaction{Field: "game_id", Reason: "game_id cannot be empty"}
	}

	category, err := transactionType.ToCategory()
	if err != nil {
		return nil, &ErrInvalidTransaction{Field: "transaction_type", Reason: err.Error()}
	}

	if round < 0 {
		return nil, &ErrInvalidTransaction{Field: "round", Reason: fmt.Sprintf("round cannot be negative: %d", round)}
	}

	t := &Transaction{
		id:              NewTransactionID(),
		gameID:          gameID,
		round:           round,
		timestamp:       timestamp,
		transactionType: transactionType,
		category:        category,
		amount:          amount,
		balanceBefore:   balanceBefore,
		balanceAfter:    balanceAfter,
		description:     description,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReconstructTransaction rebuilds a transaction from persistence without validation
func ReconstructTransaction(
	id TransactionID,
	gameID shared.GameID,
	round int,
	timestamp time.Time,
	transactionType TransactionType,
	category Category,
	amount float64,
	balanceBefore float64,
	balanceAfter float64,
	description string,
) *Transaction {
	return &Transaction{
		id:              id,
		gameID:          gameID,
		round:           round,
		timestamp:       timestamp,
		transactionType: transactionType,
		category:        category,
		amount:          amount,
		balanceBefore:   balanceBefore,
		balanceAfter:    balanceAfter,
		description:     description,
	}
}

// Validate checks that the transaction satisfies all invariants
func (t *Transaction) Validate() error {
	if t.amount == 0 {
		return &ErrInvalidTransaction{Field: "amount", Reason: "amount cannot be zero"}
	}

	expected := t.balanceBefore + t.amount
	if math.Abs(t.balanceAfter-expected) > balanceEpsilon {
		return &ErrBalanceInvariantViolation{
			BalanceBefore: t.balanceBefore,
			Amount:        t.amount,
			BalanceAfter:  t.balanceAfter,
			Expected:      expected,
		}
	}
	return nil
}

// Getters (all fields are immutable)

func (t *Transaction) ID() TransactionID                { return t.id }
func (t *Transaction) GameID() shared.GameID            { return t.gameID }
func (t *Transaction) Round() int                       { return t.round }
func (t *Transaction) Timestamp() time.Time             { return t.timestamp }
func (t *Transaction) TransactionType() TransactionType { return t.transactionType }
func (t *Transaction) Category() Category               { return t.category }
func (t *Transaction) Amount() float64                  { return t.amount }
func (t *Transaction) BalanceBefore() float64           { return t.balanceBefore }
func (t *Transaction) BalanceAfter() float64            { return t.balanceAfter }
func (t *Transaction) Description() string              { return t.description }

// IsIncome returns true if the transaction represents income
func (t *Transaction) IsIncome() bool {
	return t.amount > 0
}

// IsExpense returns true if the transaction represents an expense
func (t *Transaction) IsExpense() bool {
	return t.amount < 0
}

func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%s, type=%s, amount=%.2f, balance=%.2f->%.2f]",
		t.id.String(), t.transactionType, t.amount, t.balanceBefore, t.balanceAfter)
}
