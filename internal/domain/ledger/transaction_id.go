package ledger

import "github.com/google/uuid"

// TransactionID names one journal entry. Entries are keyed by a random UUID
// so journals from separate games can share a table.
type TransactionID struct {
	value string
}

func NewTransactionID() TransactionID {
	return TransactionID{value: uuid.New().String()}
}

// ParseTransactionID restores the id of a stored journal entry
func ParseTransactionID(id string) (TransactionID, error) {
	if id == "" {
		return TransactionID{}, &ErrInvalidTransaction{Field: "id", Reason: "journal entry id is empty"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return TransactionID{}, &ErrInvalidTransaction{Field: "id", Reason: "journal entry id " + id + " is not a UUID"}
	}
	return TransactionID{value: id}, nil
}

func (t TransactionID) String() string { return t.value }

func (t TransactionID) Equals(other TransactionID) bool { return t.value == other.value }

// IsZero reports an entry that was never written to the journal
func (t TransactionID) IsZero() bool { return t.value == "" }
