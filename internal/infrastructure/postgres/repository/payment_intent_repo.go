package repository

import (
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPaymentIntentRepository struct {
	db *gorm.DB
}

func NewDefaultPaymentIntentRepository(db *gorm.DB) *DefaultPaymentIntentRepository {
	return &DefaultPaymentIntentRepository{db: db}
}

func (r *DefaultPaymentIntentRepository) CreateIntent(intent *domain.PaymentIntentRecord) error {
	intentModel := mappers.ToGORMIntent(intent)
	if err := r.db.Create(intentModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultPaymentIntentRepository) UpdateIntentStatus(intentID string, status domain.IntentStatus) error {
	updates := map[string]interface{}{"status": string(status)}
	if status == domain.IntentSucceeded || status == domain.IntentFailed {
		updates["completed_at"] = time.Now()
	}
	return r.db.Model(&models.PaymentIntentModel{}).
		Where("id = ?", intentID).
		Updates(updates).Error
}

func (r *DefaultPaymentIntentRepository) FindPendingIntents(olderThan time.Time) ([]*domain.PaymentIntentRecord, error) {
	var intentModels []models.PaymentIntentModel
	if err := r.db.Model(&models.PaymentIntentModel{}).
		Where("status = ?", string(domain.IntentPending)).
		Where("created_at < ?", olderThan).
		Find(&intentModels).Error; err != nil {
		return nil, err
	}

	intents := make([]*domain.PaymentIntentRecord, len(intentModels))
	for i, intentModel := range intentModels {
		intents[i] = mappers.ToDomainIntent(&intentModel)
	}
	return intents, nil
}
