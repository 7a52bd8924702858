package mappers

import (
	"github.com/gigvault/escrow-service/internal/domain"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainDispute(model *models.DisputeModel) *domain.Dispute {
	return &domain.Dispute{
		ID:         model.ID,
		EscrowID:   model.EscrowID,
		RaisedBy:   model.RaisedBy,
		Reason:     model.Reason,
		Status:     domain.DisputeStatus(model.Status),
		Resolution: model.Resolution,
		ResolvedBy: model.ResolvedBy,
		ResolvedAt: model.ResolvedAt,
		CreatedAt:  model.CreatedAt,
	}
}

func ToGORMDispute(dispute *domain.Dispute) *models.DisputeModel {
	return &models.DisputeModel{
		ID:         dispute.ID,
		EscrowID:   dispute.EscrowID,
		RaisedBy:   dispute.RaisedBy,
		Reason:     dispute.Reason,
		Status:     string(dispute.Status),
		Resolution: dispute.Resolution,
		ResolvedBy: dispute.ResolvedBy,
		ResolvedAt: dispute.ResolvedAt,
		CreatedAt:  dispute.CreatedAt,
	}
}
