package models

import (
	"time"
)

type DisputeModel struct {
	ID         string `gorm:"primaryKey"`
	EscrowID   string `gorm:"index;not null"`
	RaisedBy   string `gorm:"not null"`
	Reason     string `gorm:"not null"`
	Status     string `gorm:"index;not null"`
	Resolution string
	ResolvedBy string
	ResolvedAt *time.Time
	Escrow     EscrowModel `gorm:"foreignKey:EscrowID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (DisputeModel) TableName() string {
	return "disputes"
}
