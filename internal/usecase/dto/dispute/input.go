package disputedto

import "github.com/gigvault/escrow-service/internal/domain"

type RaiseDisputeInput struct {
	EscrowID string
	Reason   string
}

type ResolveDisputeInput struct {
	EscrowID string
	Decision domain.DisputeDecision
	Notes    string
}

type GetDisputesInput struct {
	EscrowID *string
	RaisedBy *string
	Status   *string
	Page     int64
	Limit    int64
}
