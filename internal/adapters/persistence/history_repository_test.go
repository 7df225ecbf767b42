package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dronewatch-go/internal/adapters/persistence"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
	"github.com/andrescamacho/dronewatch-go/test/helpers"
)

func TestHistoryRepository_SaveGameUpserts(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormHistoryRepository(db)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	game := &round.GameRecord{ID: shared.NewGameID(), StartedAt: started, FinalBalance: 100}
	require.NoError(t, repo.SaveGame(ctx, game))

	ended := started.Add(3 * time.Minute)
	game.EndedAt = &ended
	game.RoundsPlayed = 3
	game.FinalBalance = -20
	game.Reason = round.EndReasonBankrupt
	require.NoError(t, repo.SaveGame(ctx, game))

	found, err := repo.FindGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, found.RoundsPlayed)
	assert.Equal(t, -20.0, found.FinalBalance)
	assert.Equal(t, round.EndReasonBankrupt, found.Reason)
	require.NotNil(t, found.EndedAt)
	assert.True(t, ended.Equal(*found.EndedAt))
	assert.True(t, started.Equal(found.StartedAt))
}

func TestHistoryRepository_FindGameNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormHistoryRepository(db)

	_, err := repo.FindGame(context.Background(), shared.NewGameID())

	var notFound *shared.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestHistoryRepository_ListGamesNewestFirst(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormHistoryRepository(db)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	var ids []shared.GameID
	for i := 0; i < 3; i++ {
		g := &round.GameRecord{ID: shared.NewGameID(), StartedAt: base.Add(time.Duration(i) * time.Hour)}
		ids = append(ids, g.ID)
		require.NoError(t, repo.SaveGame(ctx, g))
	}

	games, err := repo.ListGames(ctx, 2)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, ids[2].String(), games[0].ID.String())
	assert.Equal(t, ids[1].String(), games[1].ID.String())
}

func TestHistoryRepository_RoundsInPlayOrder(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormHistoryRepository(db)
	ctx := context.Background()
	game := &round.GameRecord{ID: shared.NewGameID(), StartedAt: time.Now().UTC()}
	require.NoError(t, repo.SaveGame(ctx, game))

	for _, r := range []*round.RoundRecord{
		{GameID: game.ID, Round: 2, Arrests: 1, TotalSuspects: 5, RequiredArrests: 2, Balance: 70, Reason: round.EndReasonQuotaMissed, EndedAt: time.Now().UTC()},
		{GameID: game.ID, Round: 1, Arrests: 3, TotalSuspects: 3, RequiredArrests: 1, Balance: 250, EndedAt: time.Now().UTC()},
	} {
		require.NoError(t, repo.AppendRound(ctx, r))
	}

	// Re-appending a round replaces it
	require.NoError(t, repo.AppendRound(ctx, &round.RoundRecord{GameID: game.ID, Round: 1, Arrests: 2, TotalSuspects: 3, RequiredArrests: 1, Balance: 200, EndedAt: time.Now().UTC()}))

	rounds, err := repo.ListRounds(ctx, game.ID)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, 1, rounds[0].Round)
	assert.Equal(t, 2, rounds[0].Arrests)
	assert.Equal(t, round.EndReasonNone, rounds[0].Reason)
	assert.Equal(t, round.EndReasonQuotaMissed, rounds[1].Reason)
	assert.False(t, rounds[1].QuotaMet())
}
