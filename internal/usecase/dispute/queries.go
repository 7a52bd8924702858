package usecase

import (
	"github.com/gigvault/escrow-service/internal/domain"
	disputedto "github.com/gigvault/escrow-service/internal/usecase/dto/dispute"
)

func (disputeUc *DefaultDisputeUsecase) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	return disputeUc.disputeRepo.GetDisputeByID(disputeID)
}

func (disputeUc *DefaultDisputeUsecase) GetDisputeByEscrowID(escrowID string) (*domain.Dispute, error) {
	return disputeUc.disputeRepo.GetOpenDisputeByEscrowID(escrowID)
}

func (disputeUc *DefaultDisputeUsecase) GetDisputes(input *disputedto.GetDisputesInput) (*disputedto.GetDisputesOutput, error) {
	filter := domain.DisputeFilter{
		EscrowID: input.EscrowID,
		RaisedBy: input.RaisedBy,
		Status:   input.Status,
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}

	disputes, total, err := disputeUc.disputeRepo.GetDisputes(filter, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return &disputedto.GetDisputesOutput{
		Disputes: disputes,
		Pagination: disputedto.Pagination{
			CurrentPage:  int32(page),
			TotalPages:   int32(totalPages),
			TotalItems:   int32(total),
			ItemsPerPage: int32(limit),
		},
	}, nil
}
