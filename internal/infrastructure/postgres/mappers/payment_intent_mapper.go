package mappers

import (
	"github.com/gigvault/escrow-service/internal/domain"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainIntent(model *models.PaymentIntentModel) *domain.PaymentIntentRecord {
	return &domain.PaymentIntentRecord{
		ID:          model.ID,
		EscrowID:    model.EscrowID,
		HoldID:      model.HoldID,
		Purpose:     domain.IntentPurpose(model.Purpose),
		Status:      domain.IntentStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		CompletedAt: model.CompletedAt,
	}
}

func ToGORMIntent(intent *domain.PaymentIntentRecord) *models.PaymentIntentModel {
	return &models.PaymentIntentModel{
		ID:          intent.ID,
		EscrowID:    intent.EscrowID,
		HoldID:      intent.HoldID,
		Purpose:     string(intent.Purpose),
		Status:      string(intent.Status),
		CreatedAt:   intent.CreatedAt,
		CompletedAt: intent.CompletedAt,
	}
}
