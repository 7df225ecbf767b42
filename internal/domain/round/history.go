package round

import (
	"context"
	"time"

	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

// RoundRecord is the persisted outcome of one finished round
type RoundRecord struct {
	GameID          shared.GameID
	Round           int
	Arrests         int
	TotalSuspects   int
	RequiredArrests int
	Balance         float64
	Reason          EndReason
	EndedAt         time.Time
}

// QuotaMet reports whether the round's arrests satisfied its quota
func (r *RoundRecord) QuotaMet() bool {
	return r.Arrests >= r.RequiredArrests
}

// GameRecord summarizes one game session
type GameRecord struct {
	ID           shared.GameID
	StartedAt    time.Time
	EndedAt      *time.Time
	RoundsPlayed int
	FinalBalance float64
	Reason       EndReason
}

// IsFinished reports whether the session reached game over
func (g *GameRecord) IsFinished() bool {
	return g.EndedAt != nil
}

// Won reports whether the session survived every round
func (g *GameRecord) Won() bool {
	return g.IsFinished() && g.Reason.IsWin()
}

// ApplyRound folds a finished round into the summary
func (g *GameRecord) ApplyRound(r *RoundRecord) {
	if r.Round > g.RoundsPlayed {
		g.RoundsPlayed = r.Round
	}
	g.FinalBalance = r.Balance
	if r.Reason != EndReasonNone {
		ended := r.EndedAt
		g.EndedAt = &ended
		g.Reason = r.Reason
	}
}

//go:generate go tool mockgen -destination=./mocks/history_repository_mock.go -package=mocks . HistoryRepository

// HistoryRepository persists game sessions and their round results
type HistoryRepository interface {
	// SaveGame inserts or updates a game summary
	SaveGame(ctx context.Context, game *GameRecord) error

	FindGame(ctx context.Context, id shared.GameID) (*GameRecord, error)

	// ListGames returns the most recently started games first
	ListGames(ctx context.Context, limit int) ([]*GameRecord, error)

	// AppendRound stores a round result; a repeated (game, round) pair replaces the earlier row
	AppendRound(ctx context.Context, record *RoundRecord) error

	// ListRounds returns the rounds of a game in play order
	ListRounds(ctx context.Context, gameID shared.GameID) ([]*RoundRecord, error)
}
