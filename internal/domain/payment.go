package domain

import (
	"context"
	"time"
)

type HoldStatus string

const (
	HoldStatusPending  HoldStatus = "pending"
	HoldStatusHeld     HoldStatus = "held"
	HoldStatusCaptured HoldStatus = "captured"
	HoldStatusRefunded HoldStatus = "refunded"
	HoldStatusFailed   HoldStatus = "failed"
	HoldStatusUnknown  HoldStatus = "unknown"
)

type Hold struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       HoldStatus
}

// PaymentGateway is the external custody provider. All calls may fail
// transiently; callers must re-check stored escrow status before retrying.
type PaymentGateway interface {
	CreateHold(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Hold, error)
	CaptureHold(ctx context.Context, holdID string) (HoldStatus, error)
	RefundHold(ctx context.Context, holdID string) (HoldStatus, error)
	GetHoldStatus(ctx context.Context, holdID string) (HoldStatus, error)
}

type IntentPurpose string

const (
	IntentCapture IntentPurpose = "capture"
	IntentRefund  IntentPurpose = "refund"
)

type IntentStatus string

const (
	IntentPending   IntentStatus = "pending"
	IntentSucceeded IntentStatus = "succeeded"
	IntentFailed    IntentStatus = "failed"
)

// PaymentIntentRecord is written before every money-moving gateway call
// so that a crash between gateway success and the escrow status write can
// be repaired by replaying unresolved intents against live hold status.
type PaymentIntentRecord struct {
	ID          string
	EscrowID    string
	HoldID      string
	Purpose     IntentPurpose
	Status      IntentStatus
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type PaymentIntentRepository interface {
	CreateIntent(intent *PaymentIntentRecord) error
	UpdateIntentStatus(intentID string, status IntentStatus) error
	FindPendingIntents(olderThan time.Time) ([]*PaymentIntentRecord, error)
}
