package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

type recordingObserver struct {
	changes      []BalanceChange
	bankruptcies []float64
}

func (r *recordingObserver) BalanceChanged(change BalanceChange) {
	r.changes = append(r.changes, change)
}

func (r *recordingObserver) Bankrupt(balance float64) {
	r.bankruptcies = append(r.bankruptcies, balance)
}

func TestLedger_StartsAtStartingBalance(t *testing.T) {
	l := NewLedger(DefaultConfig())
	assert.Equal(t, 100.0, l.Balance())
	assert.False(t, l.IsBankrupt())
}

func TestLedger_SubtractThenAddRestoresBalance(t *testing.T) {
	l := NewLedger(DefaultConfig())
	for _, x := range []float64{0, 1, 12.5, 250} {
		before := l.Balance()
		l.Subtract(x)
		l.Add(x)
		assert.InDelta(t, before, l.Balance(), 1e-9)
	}
}

func TestLedger_NotifiesEveryMutation(t *testing.T) {
	l := NewLedger(DefaultConfig())
	obs := &recordingObserver{}
	l.Subscribe(obs)

	l.RewardArrest("caught A1")
	l.PenalizeWrongArrest("wrong B2")

	require.Len(t, obs.changes, 2)
	assert.Equal(t, TransactionTypeArrestReward, obs.changes[0].Type)
	assert.Equal(t, 150.0, obs.changes[0].After)
	assert.Equal(t, -30.0, obs.changes[1].Amount)
	assert.Equal(t, 120.0, l.Balance())
}

func TestLedger_BankruptcyIsLevelTriggeredOnDebits(t *testing.T) {
	l := NewLedger(DefaultConfig())
	obs := &recordingObserver{}
	l.Subscribe(obs)

	l.Subtract(110)
	assert.True(t, l.IsBankrupt())
	assert.Equal(t, []float64{-10}, obs.bankruptcies)

	l.Subtract(5)
	assert.Len(t, obs.bankruptcies, 2)

	l.Add(100)
	assert.False(t, l.IsBankrupt())
	assert.Len(t, obs.bankruptcies, 2)
}

func TestLedger_BalanceJustAboveThresholdIsSolvent(t *testing.T) {
	l := NewLedger(DefaultConfig())
	l.Subtract(109.99)
	assert.False(t, l.IsBankrupt())
}

func TestLedger_CanAffordHasNoSideEffects(t *testing.T) {
	l := NewLedger(DefaultConfig())
	obs := &recordingObserver{}
	l.Subscribe(obs)

	assert.True(t, l.CanAfford(100))
	assert.False(t, l.CanAfford(100.01))
	assert.Empty(t, obs.changes)
	assert.Equal(t, 100.0, l.Balance())
}

func TestLedger_Reset(t *testing.T) {
	l := NewLedger(DefaultConfig())
	obs := &recordingObserver{}
	l.Subscribe(obs)
	l.Subtract(500)

	l.Reset()
	assert.Equal(t, 100.0, l.Balance())
	assert.False(t, l.IsBankrupt())
	assert.Equal(t, 100.0, obs.changes[len(obs.changes)-1].After)
}

func TestNewTransaction_Invariants(t *testing.T) {
	gameID := shared.NewGameID()
	now := time.Now()

	tx, err := NewTransaction(gameID, 1, now, TransactionTypeArrestReward, 50, 100, 150, "caught")
	require.NoError(t, err)
	assert.Equal(t, CategoryBountyRevenue, tx.Category())
	assert.True(t, tx.IsIncome())

	_, err = NewTransaction(gameID, 1, now, TransactionTypeArrestReward, 50, 100, 140, "bad")
	var invariantErr *ErrBalanceInvariantViolation
	assert.ErrorAs(t, err, &invariantErr)

	_, err = NewTransaction(gameID, 1, now, TransactionTypeArrestReward, 0, 100, 100, "zero")
	assert.Error(t, err)

	_, err = NewTransaction(shared.GameID{}, 1, now, TransactionTypeArrestReward, 50, 100, 150, "no game")
	assert.Error(t, err)

	_, err = NewTransaction(gameID, 1, now, TransactionType("REFUEL"), 50, 100, 150, "bad type")
	assert.Error(t, err)
}

func TestParseTransactionID(t *testing.T) {
	id := NewTransactionID()
	assert.False(t, id.IsZero())

	parsed, err := ParseTransactionID(id.String())
	require.NoError(t, err)
	assert.True(t, parsed.Equals(id))

	var invalid *ErrInvalidTransaction
	_, err = ParseTransactionID("")
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "id", invalid.Field)

	_, err = ParseTransactionID("entry-7")
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "entry-7")
	assert.True(t, TransactionID{}.IsZero())
}
