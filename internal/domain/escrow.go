package domain

import "time"

type EscrowStatus string

const (
	EscrowStatusPending  EscrowStatus = "pending"
	EscrowStatusFunded   EscrowStatus = "funded"
	EscrowStatusReleased EscrowStatus = "released"
	EscrowStatusDisputed EscrowStatus = "disputed"
	EscrowStatusRefunded EscrowStatus = "refunded"
)

// CanTransition reports whether the escrow state machine permits
// moving from one status to another. released and refunded are terminal.
func CanTransition(from, to EscrowStatus) bool {
	switch from {
	case EscrowStatusPending:
		return to == EscrowStatusFunded
	case EscrowStatusFunded:
		return to == EscrowStatusReleased || to == EscrowStatusDisputed
	case EscrowStatusDisputed:
		return to == EscrowStatusReleased || to == EscrowStatusRefunded
	default:
		return false
	}
}

type Escrow struct {
	ID           string
	ContractID   string
	Title        string
	ClientID     string
	FreelancerID string
	Amount       int64 // minor currency units
	Currency     string
	Status       EscrowStatus
	HoldID       string
	HoldStatus   HoldStatus // live gateway status, filled on read paths only
	FundedAt     *time.Time
	ReleasedAt   *time.Time
	DisputedAt   *time.Time
	CreatedAt    time.Time
}

// IsParty reports whether userID is the client or freelancer bound to the escrow.
func (e *Escrow) IsParty(userID string) bool {
	return e.ClientID == userID || e.FreelancerID == userID
}

type EscrowRepository interface {
	CreateEscrow(escrow *Escrow) error
	GetEscrowByID(escrowID string) (*Escrow, error)
	GetEscrowsByUserID(userID string) ([]*Escrow, error)
	UpdateEscrowStatus(escrowID string, status EscrowStatus) error

	// UpdateEscrowStatusIf performs a conditional single-row update:
	// status moves to newStatus only if the stored status still equals
	// oldStatus. ErrInvalidStateTransition when another operation won.
	UpdateEscrowStatusIf(escrowID string, oldStatus, newStatus EscrowStatus) error

	SetEscrowHold(escrowID, holdID string) error
	FindStaleHeldEscrows(olderThan time.Time) ([]*Escrow, error)
}
