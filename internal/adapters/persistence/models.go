package persistence

import (
	"time"
)

// GameModel represents the games table
type GameModel struct {
	ID           string     `gorm:"column:id;primaryKey;not null"`
	StartedAt    time.Time  `gorm:"column:started_at;not null"`
	EndedAt      *time.Time `gorm:"column:ended_at"`
	RoundsPlayed int        `gorm:"column:rounds_played;not null;default:0"`
	FinalBalance float64    `gorm:"column:final_balance;not null;default:0"`
	EndReason    string     `gorm:"column:end_reason"`
}

func (GameModel) TableName() string {
	return "games"
}

// RoundResultModel represents the round_results table
type RoundResultModel struct {
	GameID          string     `gorm:"column:game_id;primaryKey;not null"`
	Round           int        `gorm:"column:round;primaryKey;not null"`
	Game            *GameModel `gorm:"foreignKey:GameID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Arrests         int        `gorm:"column:arrests;not null"`
	TotalSuspects   int        `gorm:"column:total_suspects;not null"`
	RequiredArrests int        `gorm:"column:required_arrests;not null"`
	Balance         float64    `gorm:"column:balance;not null"`
	EndReason       string     `gorm:"column:end_reason"`
	EndedAt         time.Time  `gorm:"column:ended_at;not null"`
}

func (RoundResultModel) TableName() string {
	return "round_results"
}

// TransactionModel represents the transactions table
type TransactionModel struct {
	ID              string    `gorm:"column:id;primaryKey;not null"`
	GameID          string    `gorm:"column:game_id;not null;index:idx_transactions_game_round"`
	Round           int       `gorm:"column:round;not null;index:idx_transactions_game_round"`
	Timestamp       time.Time `gorm:"column:timestamp;not null;index"`
	TransactionType string    `gorm:"column:transaction_type;not null"`
	Category        string    `gorm:"column:category;not null"`
	Amount          float64   `gorm:"column:amount;not null"`
	BalanceBefore   float64   `gorm:"column:balance_before;not null"`
	BalanceAfter    float64   `gorm:"column:balance_after;not null"`
	Description     string    `gorm:"column:description;type:text"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// PersonModel represents the people table (the authored catalog)
type PersonModel struct {
	Class    string `gorm:"column:class;primaryKey;not null"`
	SubClass int    `gorm:"column:sub_class;primaryKey;not null"`
	Name     string `gorm:"column:name;not null"`
	Visual   string `gorm:"column:visual"`
}

func (PersonModel) TableName() string {
	return "people"
}

// AllModels lists every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&GameModel{},
		&RoundResultModel{},
		&TransactionModel{},
		&PersonModel{},
	}
}
