package mappers

import (
	"github.com/gigvault/escrow-service/internal/domain"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainEscrow(model *models.EscrowModel) *domain.Escrow {
	return &domain.Escrow{
		ID:           model.ID,
		ContractID:   model.ContractID,
		Title:        model.Title,
		ClientID:     model.ClientID,
		FreelancerID: model.FreelancerID,
		Amount:       model.Amount,
		Currency:     model.Currency,
		Status:       domain.EscrowStatus(model.Status),
		HoldID:       model.HoldID,
		FundedAt:     model.FundedAt,
		ReleasedAt:   model.ReleasedAt,
		DisputedAt:   model.DisputedAt,
		CreatedAt:    model.CreatedAt,
	}
}

func ToGORMEscrow(escrow *domain.Escrow) *models.EscrowModel {
	return &models.EscrowModel{
		ID:           escrow.ID,
		ContractID:   escrow.ContractID,
		Title:        escrow.Title,
		ClientID:     escrow.ClientID,
		FreelancerID: escrow.FreelancerID,
		Amount:       escrow.Amount,
		Currency:     escrow.Currency,
		Status:       string(escrow.Status),
		HoldID:       escrow.HoldID,
		FundedAt:     escrow.FundedAt,
		ReleasedAt:   escrow.ReleasedAt,
		DisputedAt:   escrow.DisputedAt,
		CreatedAt:    escrow.CreatedAt,
	}
}
