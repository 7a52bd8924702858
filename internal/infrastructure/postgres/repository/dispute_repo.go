package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDisputeRepository struct {
	db *gorm.DB
}

func NewDefaultDisputeRepository(db *gorm.DB) *DefaultDisputeRepository {
	return &DefaultDisputeRepository{db: db}
}

func (r *DefaultDisputeRepository) CreateDispute(dispute *domain.Dispute) error {
	disputeModel := mappers.ToGORMDispute(dispute)
	if err := r.db.Create(&disputeModel).Error; err != nil {
		return err
	}
	dispute.ID = disputeModel.ID
	return nil
}

func (r *DefaultDisputeRepository) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	var disputeModel models.DisputeModel
	if err := r.db.Model(&models.DisputeModel{}).Where("id = ?", disputeID).First(&disputeModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDisputeNotFound
		}
		return nil, err
	}

	return mappers.ToDomainDispute(&disputeModel), nil
}

func (r *DefaultDisputeRepository) GetOpenDisputeByEscrowID(escrowID string) (*domain.Dispute, error) {
	var disputeModel models.DisputeModel
	if err := r.db.Model(&models.DisputeModel{}).
		Where("escrow_id = ?", escrowID).
		Where("status = ?", string(domain.DisputeOpen)).
		First(&disputeModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDisputeNotFound
		}
		return nil, err
	}

	return mappers.ToDomainDispute(&disputeModel), nil
}

func (r *DefaultDisputeRepository) ResolveDispute(disputeID, resolution, resolvedBy string) error {
	result := r.db.Model(&models.DisputeModel{}).
		Where("id = ?", disputeID).
		Where("status = ?", string(domain.DisputeOpen)).
		Updates(map[string]interface{}{
			"status":      string(domain.DisputeResolved),
			"resolution":  resolution,
			"resolved_by": resolvedBy,
			"resolved_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDisputeNotFound
	}
	return nil
}

func (r *DefaultDisputeRepository) GetDisputes(filter domain.DisputeFilter, page, limit int64) ([]*domain.Dispute, int64, error) {
	query := r.db.Model(&models.DisputeModel{})

	if filter.EscrowID != nil {
		query = query.Where("escrow_id = ?", *filter.EscrowID)
	}
	if filter.RaisedBy != nil {
		query = query.Where("raised_by = ?", *filter.RaisedBy)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	offset := (page - 1) * limit
	query = query.Offset(int(offset)).Limit(int(limit)).Order("created_at DESC")

	var disputeModels []models.DisputeModel
	if err := query.Find(&disputeModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find dispute models: %w", err)
	}

	disputes := make([]*domain.Dispute, len(disputeModels))
	for i, disputeModel := range disputeModels {
		disputes[i] = mappers.ToDomainDispute(&disputeModel)
	}

	return disputes, total, nil
}
