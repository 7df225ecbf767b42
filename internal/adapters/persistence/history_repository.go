package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// GormHistoryRepository implements round.HistoryRepository using GORM
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history repository
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// SaveGame inserts or updates a game summary
func (r *GormHistoryRepository) SaveGame(ctx context.Context, game *round.GameRecord) error {
	model := &GameModel{
		ID:           game.ID.String(),
		StartedAt:    game.StartedAt,
		EndedAt:      game.EndedAt,
		RoundsPlayed: game.RoundsPlayed,
		FinalBalance: game.FinalBalance,
		EndReason:    string(game.Reason),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"ended_at", "rounds_played", "final_balance", "end_reason"}),
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save game: %w", result.Error)
	}
	return nil
}

// FindGame retrieves one game summary
func (r *GormHistoryRepository) FindGame(ctx context.Context, id shared.GameID) (*round.GameRecord, error) {
	var model GameModel
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("game", id.String())
		}
		return nil, fmt.Errorf("failed to find game: %w", result.Error)
	}
	return modelToGame(&model)
}

// ListGames returns the most recently started games first
func (r *GormHistoryRepository) ListGames(ctx context.Context, limit int) ([]*round.GameRecord, error) {
	query := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []GameModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]*round.GameRecord, 0, len(models))
	for i := range models {
		game, err := modelToGame(&models[i])
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

// AppendRound stores a round result, replacing an earlier row for the same round
func (r *GormHistoryRepository) AppendRound(ctx context.Context, record *round.RoundRecord) error {
	model := &RoundResultModel{
		GameID:          record.GameID.String(),
		Round:           record.Round,
		Arrests:         record.Arrests,
		TotalSuspects:   record.TotalSuspects,
		RequiredArrests: record.RequiredArrests,
		Balance:         record.Balance,
		EndReason:       string(record.Reason),
		EndedAt:         record.EndedAt,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "round"}},
		UpdateAll: true,
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to append round result: %w", result.Error)
	}
	return nil
}

// ListRounds returns the rounds of a game in play order
func (r *GormHistoryRepository) ListRounds(ctx context.Context, gameID shared.GameID) ([]*round.RoundRecord, error) {
	var models []RoundResultModel
	result := r.db.WithContext(ctx).
		Where("game_id = ?", gameID.String()).
		Order("round ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list round results: %w", result.Error)
	}

	records := make([]*round.RoundRecord, 0, len(models))
	for _, m := range models {
		reason, err := round.ParseEndReason(m.EndReason)
		if err != nil {
			return nil, fmt.Errorf("invalid end reason in database: %w", err)
		}
		records = append(records, &round.RoundRecord{
			GameID:          gameID,
			Round:           m.Round,
			Arrests:         m.Arrests,
			TotalSuspects:   m.TotalSuspects,
			RequiredArrests: m.RequiredArrests,
			Balance:         m.Balance,
			Reason:          reason,
			EndedAt:         m.EndedAt,
		})
	}
	return records, nil
}

func modelToGame(model *GameModel) (*round.GameRecord, error) {
	id, err := shared.NewGameIDFromString(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid game ID in database: %w", err)
	}
	reason, err := round.ParseEndReason(model.EndReason)
	if err != nil {
		return nil, fmt.Errorf("invalid end reason in database: %w", err)
	}
	return &round.GameRecord{
		ID:           id,
		StartedAt:    model.StartedAt,
		EndedAt:      model.EndedAt,
		RoundsPlayed: model.RoundsPlayed,
		FinalBalance: model.FinalBalance,
		Reason:       reason,
	}, nil
}
