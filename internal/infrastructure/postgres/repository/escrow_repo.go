package repository

import (
	"errors"
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultEscrowRepository struct {
	DB *gorm.DB
}

func NewDefaultEscrowRepository(db *gorm.DB) *DefaultEscrowRepository {
	return &DefaultEscrowRepository{DB: db}
}

func (r *DefaultEscrowRepository) CreateEscrow(escrow *domain.Escrow) error {
	escrowModel := mappers.ToGORMEscrow(escrow)
	if err := r.DB.Create(escrowModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultEscrowRepository) GetEscrowByID(escrowID string) (*domain.Escrow, error) {
	var escrowModel models.EscrowModel
	if err := r.DB.First(&escrowModel, "id = ?", escrowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEscrowNotFound
		}
		return nil, err
	}

	return mappers.ToDomainEscrow(&escrowModel), nil
}

func (r *DefaultEscrowRepository) GetEscrowsByUserID(userID string) ([]*domain.Escrow, error) {
	var escrowModels []models.EscrowModel
	if err := r.DB.Model(&models.EscrowModel{}).
		Where("client_id = ? OR freelancer_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&escrowModels).Error; err != nil {
		return nil, err
	}

	escrows := make([]*domain.Escrow, len(escrowModels))
	for i, escrowModel := range escrowModels {
		escrows[i] = mappers.ToDomainEscrow(&escrowModel)
	}
	return escrows, nil
}

// statusTimestamps maps a target status to the column stamped on transition.
var statusTimestamps = map[domain.EscrowStatus]string{
	domain.EscrowStatusFunded:   "funded_at",
	domain.EscrowStatusReleased: "released_at",
	domain.EscrowStatusDisputed: "disputed_at",
}

func statusUpdates(status domain.EscrowStatus) map[string]interface{} {
	updates := map[string]interface{}{"status": string(status)}
	if column, ok := statusTimestamps[status]; ok {
		updates[column] = time.Now()
	}
	return updates
}

func (r *DefaultEscrowRepository) UpdateEscrowStatus(escrowID string, status domain.EscrowStatus) error {
	result := r.DB.Model(&models.EscrowModel{}).
		Where("id = ?", escrowID).
		Updates(statusUpdates(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEscrowNotFound
	}
	return nil
}

// UpdateEscrowStatusIf is the compare-and-swap used to serialize competing
// transitions: a single-row conditional UPDATE that only succeeds when the
// stored status still matches oldStatus.
func (r *DefaultEscrowRepository) UpdateEscrowStatusIf(escrowID string, oldStatus, newStatus domain.EscrowStatus) error {
	result := r.DB.Model(&models.EscrowModel{}).
		Where("id = ? AND status = ?", escrowID, string(oldStatus)).
		Updates(statusUpdates(newStatus))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvalidStateTransition
	}
	return nil
}

func (r *DefaultEscrowRepository) SetEscrowHold(escrowID, holdID string) error {
	result := r.DB.Model(&models.EscrowModel{}).
		Where("id = ?", escrowID).
		Update("hold_id", holdID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEscrowNotFound
	}
	return nil
}

func (r *DefaultEscrowRepository) FindStaleHeldEscrows(olderThan time.Time) ([]*domain.Escrow, error) {
	var escrowModels []models.EscrowModel
	if err := r.DB.Model(&models.EscrowModel{}).
		Where("status IN ?", []string{string(domain.EscrowStatusFunded), string(domain.EscrowStatusDisputed)}).
		Where("hold_id <> ''").
		Where("funded_at < ?", olderThan).
		Find(&escrowModels).Error; err != nil {
		return nil, err
	}

	escrows := make([]*domain.Escrow, len(escrowModels))
	for i, escrowModel := range escrowModels {
		escrows[i] = mappers.ToDomainEscrow(&escrowModel)
	}
	return escrows, nil
}
