package disputedto

import "github.com/gigvault/escrow-service/internal/domain"

type GetDisputesOutput struct {
	Disputes   []*domain.Dispute
	Pagination Pagination
}

type Pagination struct {
	CurrentPage  int32
	TotalPages   int32
	TotalItems   int32
	ItemsPerPage int32
}
