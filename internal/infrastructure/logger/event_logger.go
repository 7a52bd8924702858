package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// EscrowStatusChangedEvent is an append-only audit record of a lifecycle
// transition. It is written after the transition has been committed.
type EscrowStatusChangedEvent struct {
	ID         uint `gorm:"primaryKey"`
	EscrowID   string
	ContractID string
	FromStatus string
	ToStatus   string
	ActorID    string
	Operation  string
	Amount     int64
	Currency   string
	Timestamp  time.Time
}

func (EscrowStatusChangedEvent) TableName() string {
	return "escrow_status_events"
}

type EscrowEventLogger interface {
	LogStatusChange(ctx context.Context, event EscrowStatusChangedEvent) error
}

type PGEscrowEventLogger struct {
	db *gorm.DB
}

func NewPGEscrowEventLogger(db *gorm.DB) *PGEscrowEventLogger {
	return &PGEscrowEventLogger{db: db}
}

func (l *PGEscrowEventLogger) LogStatusChange(ctx context.Context, event EscrowStatusChangedEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return l.db.WithContext(ctx).Create(&event).Error
}
