package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dronewatch-go/internal/adapters/persistence"
	"github.com/andrescamacho/dronewatch-go/internal/domain/ledger"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
	"github.com/andrescamacho/dronewatch-go/test/helpers"
)

func mustTransaction(t *testing.T, gameID shared.GameID, round int, at time.Time, txType ledger.TransactionType, amount, before float64) *ledger.Transaction {
	t.Helper()
	tx, err := ledger.NewTransaction(gameID, round, at, txType, amount, before, before+amount, txType.String())
	require.NoError(t, err)
	return tx
}

func TestTransactionRepository_CreateAndFindByID(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTransactionRepository(db)
	gameID := shared.NewGameID()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tx := mustTransaction(t, gameID, 1, at, ledger.TransactionTypeArrestReward, 50, 100)

	// Act
	require.NoError(t, repo.Create(context.Background(), tx))
	found, err := repo.FindByID(context.Background(), tx.ID(), gameID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, tx.ID().String(), found.ID().String())
	assert.Equal(t, ledger.CategoryBountyRevenue, found.Category())
	assert.Equal(t, 50.0, found.Amount())
	assert.Equal(t, 150.0, found.BalanceAfter())
	assert.Equal(t, 1, found.Round())
	assert.True(t, at.Equal(found.Timestamp()))
}

func TestTransactionRepository_FindByIDIsScopedToGame(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTransactionRepository(db)
	tx := mustTransaction(t, shared.NewGameID(), 1, time.Now(), ledger.TransactionTypeDronePurchase, -15, 100)
	require.NoError(t, repo.Create(context.Background(), tx))

	_, err := repo.FindByID(context.Background(), tx.ID(), shared.NewGameID())

	var notFound *ledger.ErrTransactionNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestTransactionRepository_FiltersAndPagination(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTransactionRepository(db)
	ctx := context.Background()
	gameID := shared.NewGameID()
	other := shared.NewGameID()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	balance := 100.0
	for i, row := range []struct {
		round  int
		txType ledger.TransactionType
		amount float64
	}{
		{1, ledger.TransactionTypeDronePurchase, -15},
		{1, ledger.TransactionTypeArrestReward, 50},
		{1, ledger.TransactionTypeWrongArrestPenalty, -30},
		{2, ledger.TransactionTypeArrestReward, 50},
	} {
		tx := mustTransaction(t, gameID, row.round, base.Add(time.Duration(i)*time.Second), row.txType, row.amount, balance)
		balance += row.amount
		require.NoError(t, repo.Create(ctx, tx))
	}
	require.NoError(t, repo.Create(ctx, mustTransaction(t, other, 1, base, ledger.TransactionTypeArrestReward, 50, 100)))

	all, err := repo.FindByGame(ctx, gameID, ledger.QueryOptions{OrderBy: "timestamp ASC"})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, ledger.TransactionTypeDronePurchase, all[0].TransactionType())

	round1 := 1
	inRound, err := repo.FindByGame(ctx, gameID, ledger.QueryOptions{Round: &round1})
	require.NoError(t, err)
	assert.Len(t, inRound, 3)

	bounty := ledger.CategoryBountyRevenue
	count, err := repo.CountByGame(ctx, gameID, ledger.QueryOptions{Category: &bounty})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	page, err := repo.FindByGame(ctx, gameID, ledger.QueryOptions{Limit: 2, Offset: 1, OrderBy: "timestamp ASC"})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ledger.TransactionTypeArrestReward, page[0].TransactionType())
	assert.Equal(t, ledger.TransactionTypeWrongArrestPenalty, page[1].TransactionType())
}
