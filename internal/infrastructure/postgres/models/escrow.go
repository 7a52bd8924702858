package models

import (
	"time"
)

type EscrowModel struct {
	ID           string `gorm:"primaryKey"`
	ContractID   string `gorm:"index;not null"`
	Title        string `gorm:"not null"`
	ClientID     string `gorm:"index;not null"`
	FreelancerID string `gorm:"index;not null"`
	Amount       int64  `gorm:"not null"`
	Currency     string `gorm:"not null;default:'usd'"`
	Status       string `gorm:"index;not null"`
	HoldID       string
	FundedAt     *time.Time
	ReleasedAt   *time.Time
	DisputedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (EscrowModel) TableName() string {
	return "escrows"
}
