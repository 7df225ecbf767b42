package ledger

// Config holds the economy constants
type Config struct {
	StartingBalance     float64
	ArrestReward        float64
	WrongArrestPenalty  float64
	BankruptcyThreshold float64
}

// DefaultConfig returns the standard economy: start at 100, +50 per correct arrest,
// -30 per wrong arrest, bankrupt at -10 or below.
func DefaultConfig() Config {
	return Config{
		StartingBalance:     100,
		ArrestReward:        50,
		WrongArrestPenalty:  30,
		BankruptcyThreshold: -10,
	}
}

// BalanceChange describes one applied mutation
type BalanceChange struct {
	Type        TransactionType
	Amount      float64
	Before      float64
	After       float64
	Description string
}

// Observer is notified synchronously of ledger mutations.
// Bankrupt fires on every debit that leaves the balance at or below the threshold.
type Observer interface {
	BalanceChanged(change BalanceChange)
	Bankrupt(balance float64)
}

// Ledger is the signed game balance. All mutations go through it.
type Ledger struct {
	config    Config
	balance   float64
	observers []Observer
}

func NewLedger(config Config) *Ledger {
	return &Ledger{config: config, balance: config.StartingBalance}
}

// Subscribe registers an observer for balance changes
func (l *Ledger) Subscribe(o Observer) {
	l.observers = append(l.observers, o)
}

func (l *Ledger) Config() Config {
	return l.config
}

func (l *Ledger) Balance() float64 {
	return l.balance
}

// Add credits amount as a manual adjustment
func (l *Ledger) Add(amount float64) BalanceChange {
	return l.apply(TransactionTypeAdjustmentCredit, amount, "manual credit")
}

// Subtract debits amount as a manual adjustment
func (l *Ledger) Subtract(amount float64) BalanceChange {
	return l.Debit(TransactionTypeAdjustmentDebit, amount, "manual debit")
}

// Credit adds amount under the given transaction type
func (l *Ledger) Credit(t TransactionType, amount float64, description string) BalanceChange {
	return l.apply(t, amount, description)
}

// Debit removes amount under the given transaction type
func (l *Ledger) Debit(t TransactionType, amount float64, description string) BalanceChange {
	change := l.apply(t, -amount, description)
	if l.IsBankrupt() {
		for _, o := range l.observers {
			o.Bankrupt(l.balance)
		}
	}
	return change
}

// RewardArrest credits the configured reward
func (l *Ledger) RewardArrest(description string) BalanceChange {
	return l.Credit(TransactionTypeArrestReward, l.config.ArrestReward, description)
}

// PenalizeWrongArrest debits the configured penalty
func (l *Ledger) PenalizeWrongArrest(description string) BalanceChange {
	return l.Debit(TransactionTypeWrongArrestPenalty, l.config.WrongArrestPenalty, description)
}

// CanAfford reports whether cost can be paid from the current balance. It has no side effects.
func (l *Ledger) CanAfford(cost float64) bool {
	return l.balance >= cost
}

// IsBankrupt reports whether the balance is at or below the bankruptcy threshold
func (l *Ledger) IsBankrupt() bool {
	return l.balance <= l.config.BankruptcyThreshold
}

// Reset restores the starting balance and notifies observers
func (l *Ledger) Reset() {
	before := l.balance
	l.balance = l.config.StartingBalance
	change := BalanceChange{
		Amount:      l.balance - before,
		Before:      before,
		After:       l.balance,
		Description: "reset",
	}
	for _, o := range l.observers {
		o.BalanceChanged(change)
	}
}

func (l *Ledger) apply(t TransactionType, amount float64, description string) BalanceChange {
	change := BalanceChange{
		Type:        t,
		Amount:      amount,
		Before:      l.balance,
		After:       l.balance + amount,
		Description: description,
	}
	l.balance = change.After

	for _, o := range l.observers {
		o.BalanceChanged(change)
	}
	return change
}
