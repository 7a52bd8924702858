package escrowdto

type CreateEscrowInput struct {
	ContractID   string
	Title        string
	ClientID     string
	FreelancerID string
	Amount       int64 // minor currency units
	Currency     string
}
