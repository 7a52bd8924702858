package publisher

type EscrowEvent struct {
	EscrowID     string `json:"escrow_id"`
	ContractID   string `json:"contract_id"`
	ClientID     string `json:"client_id"`
	FreelancerID string `json:"freelancer_id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	HoldID       string `json:"hold_id,omitempty"`
}
