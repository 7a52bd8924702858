package models

import "time"

// PaymentIntentModel tracks money-moving gateway calls. A row is written
// before the call and completed after it, so unresolved rows mark escrows
// whose stored status may lag the gateway's true state.
type PaymentIntentModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	EscrowID    string `gorm:"index;not null"`
	HoldID      string `gorm:"not null"`
	Purpose     string `gorm:"not null"` // "capture", "refund"
	Status      string `gorm:"index;not null;default:'pending'"`
	CreatedAt   time.Time
	CompletedAt *time.Time
	UpdatedAt   time.Time
}

func (PaymentIntentModel) TableName() string {
	return "payment_intents"
}
