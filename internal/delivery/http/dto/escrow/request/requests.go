package request

type CreateEscrowRequest struct {
	ContractID   string `json:"contract_id"`
	Title        string `json:"title"`
	FreelancerID string `json:"freelancer_id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency,omitempty"`
}

type FundEscrowRequest struct {
	HoldID string `json:"hold_id"`
}

type RaiseDisputeRequest struct {
	Reason string `json:"reason"`
}

type ResolveDisputeRequest struct {
	Decision string `json:"decision"` // release_to_freelancer | refund_to_client
	Notes    string `json:"notes"`
}
