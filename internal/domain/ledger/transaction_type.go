package ledger

import "fmt"

// TransactionType represents the kind of ledger mutation
type TransactionType string

const (
	// TransactionTypeArrestReward is credited for arresting a wanted person
	TransactionTypeArrestReward TransactionType = "ARREST_REWARD"

	// TransactionTypeWrongArrestPenalty is debited for arresting someone who is not wanted
	TransactionTypeWrongArrestPenalty TransactionType = "WRONG_ARREST_PENALTY"

	// TransactionTypeDronePurchase is debited when a drone is bought
	TransactionTypeDronePurchase TransactionType = "DRONE_PURCHASE"

	// TransactionTypeAdjustmentCredit is a manual credit through Add
	TransactionTypeAdjustmentCredit TransactionType = "ADJUSTMENT_CREDIT"

	// TransactionTypeAdjustmentDebit is a manual debit through Subtract
	TransactionTypeAdjustmentDebit TransactionType = "ADJUSTMENT_DEBIT"
)

// AllTransactionTypes returns all valid transaction types
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypeArrestReward,
		TransactionTypeWrongArrestPenalty,
		TransactionTypeDronePurchase,
		TransactionTypeAdjustmentCredit,
		TransactionTypeAdjustmentDebit,
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	_, ok := TypeToCategoryMap[t]
	return ok
}

// ToCategory maps the transaction type to its category
func (t TransactionType) ToCategory() (Category, error) {
	category, exists := TypeToCategoryMap[t]
	if !exists {
		return "", fmt.Errorf("unknown transaction type: %s", t)
	}
	return category, nil
}

// ParseTransactionType parses a string into a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return t, nil
}
