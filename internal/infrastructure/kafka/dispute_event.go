package publisher

type DisputeEvent struct {
	DisputeID  string `json:"dispute_id"`
	EscrowID   string `json:"escrow_id"`
	RaisedBy   string `json:"raised_by"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
	Resolution string `json:"resolution,omitempty"`
	ResolvedBy string `json:"resolved_by,omitempty"`
}
