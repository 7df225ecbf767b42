package queries

import (
	"time"

	"github.com/andrescamacho/dronewatch-go/internal/domain/round"
)

// GameDTO is the read model of one game session
type GameDTO struct {
	ID           string     `json:"id"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	RoundsPlayed int        `json:"rounds_played"`
	FinalBalance float64    `json:"final_balance"`
	Reason       string     `json:"reason"`
	Won          bool       `json:"won"`
}

// RoundDTO is the read model of one finished round
type RoundDTO struct {
	Round           int       `json:"round"`
	Arrests         int       `json:"arrests"`
	TotalSuspects   int       `json:"total_suspects"`
	RequiredArrests int       `json:"required_arrests"`
	QuotaMet        bool      `json:"quota_met"`
	Balance         float64   `json:"balance"`
	Reason          string    `json:"reason"`
	EndedAt         time.Time `json:"ended_at"`
}

func toGameDTO(g *round.GameRecord) *GameDTO {
	return &GameDTO{
		ID:           g.ID.String(),
		StartedAt:    g.StartedAt,
		EndedAt:      g.EndedAt,
		RoundsPlayed: g.RoundsPlayed,
		FinalBalance: g.FinalBalance,
		Reason:       g.Reason.String(),
		Won:          g.Won(),
	}
}

func toRoundDTO(r *round.RoundRecord) *RoundDTO {
	return &RoundDTO{
		Round:           r.Round,
		Arrests:         r.Arrests,
		TotalSuspects:   r.TotalSuspects,
		RequiredArrests: r.RequiredArrests,
		QuotaMet:        r.QuotaMet(),
		Balance:         r.Balance,
		Reason:          r.Reason.String(),
		EndedAt:         r.EndedAt,
	}
}
