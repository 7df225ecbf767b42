package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/andrescamacho/dronewatch-go/internal/application/history/queries"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
	"github.com/andrescamacho/dronewatch-go/internal/domain/round/mocks"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

func TestListGames_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockHistoryRepository(gomock.NewController(t))
	ended := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	won := &round.GameRecord{ID: shared.NewGameID(), RoundsPlayed: 10, EndedAt: &ended, Reason: round.EndReasonAllRoundsComplete}
	open := &round.GameRecord{ID: shared.NewGameID(), RoundsPlayed: 2}

	repo.EXPECT().ListGames(ctx, 20).Return([]*round.GameRecord{won, open}, nil)

	h := queries.NewListGamesHandler(repo)
	resp, err := h.Handle(ctx, &queries.ListGamesQuery{})
	require.NoError(t, err)

	games := resp.(*queries.ListGamesResponse).Games
	require.Len(t, games, 2)
	assert.Equal(t, won.ID.String(), games[0].ID)
	assert.True(t, games[0].Won)
	assert.Equal(t, "ALL_ROUNDS_COMPLETE", games[0].Reason)
	assert.False(t, games[1].Won)
	assert.Nil(t, games[1].EndedAt)
	assert.Equal(t, "NONE", games[1].Reason)
}

func TestListGames_ExplicitLimit(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockHistoryRepository(gomock.NewController(t))
	repo.EXPECT().ListGames(ctx, 3).Return(nil, nil)

	h := queries.NewListGamesHandler(repo)
	resp, err := h.Handle(ctx, &queries.ListGamesQuery{Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, resp.(*queries.ListGamesResponse).Games)
}

func TestGetGameHistory(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockHistoryRepository(gomock.NewController(t))
	gameID := shared.NewGameID()

	repo.EXPECT().FindGame(ctx, gameID).Return(&round.GameRecord{ID: gameID, RoundsPlayed: 2, FinalBalance: 4}, nil)
	repo.EXPECT().ListRounds(ctx, gameID).Return([]*round.RoundRecord{
		{GameID: gameID, Round: 1, Arrests: 2, RequiredArrests: 2, Balance: 6},
		{GameID: gameID, Round: 2, Arrests: 1, RequiredArrests: 3, Balance: 4, Reason: round.EndReasonQuotaMissed},
	}, nil)

	h := queries.NewGetGameHistoryHandler(repo)
	resp, err := h.Handle(ctx, &queries.GetGameHistoryQuery{GameID: gameID.String()})
	require.NoError(t, err)

	history := resp.(*queries.GetGameHistoryResponse)
	assert.Equal(t, 2, history.Game.RoundsPlayed)
	require.Len(t, history.Rounds, 2)
	assert.True(t, history.Rounds[0].QuotaMet)
	assert.False(t, history.Rounds[1].QuotaMet)
	assert.Equal(t, "QUOTA_MISSED", history.Rounds[1].Reason)
}

func TestGetGameHistory_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockHistoryRepository(gomock.NewController(t))
	gameID := shared.NewGameID()
	repo.EXPECT().FindGame(ctx, gameID).Return(nil, shared.NewNotFoundError("game", gameID.String()))

	h := queries.NewGetGameHistoryHandler(repo)
	_, err := h.Handle(ctx, &queries.GetGameHistoryQuery{GameID: gameID.String()})
	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
