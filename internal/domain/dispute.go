package domain

import "time"

type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "open"
	DisputeResolved DisputeStatus = "resolved"
)

type DisputeDecision string

const (
	DecisionReleaseToFreelancer DisputeDecision = "release_to_freelancer"
	DecisionRefundToClient      DisputeDecision = "refund_to_client"
)

type Dispute struct {
	ID         string
	EscrowID   string
	RaisedBy   string
	Reason     string
	Status     DisputeStatus
	Resolution string
	ResolvedBy string
	ResolvedAt *time.Time
	CreatedAt  time.Time
}

type DisputeFilter struct {
	EscrowID *string
	RaisedBy *string
	Status   *string
}

type DisputeRepository interface {
	CreateDispute(dispute *Dispute) error
	GetDisputeByID(disputeID string) (*Dispute, error)
	GetOpenDisputeByEscrowID(escrowID string) (*Dispute, error)
	ResolveDispute(disputeID, resolution, resolvedBy string) error
	GetDisputes(filter DisputeFilter, page, limit int64) ([]*Dispute, int64, error)
}
