package repository

import (
	"errors"

	"github.com/gigvault/escrow-service/internal/domain"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewDefaultUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

func (r *DefaultUserRepository) GetUserByID(userID string) (*domain.User, error) {
	var userModel models.UserModel
	if err := r.db.First(&userModel, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return mappers.ToDomainUser(&userModel), nil
}

func (r *DefaultUserRepository) GetUserByEmail(email string) (*domain.User, error) {
	var userModel models.UserModel
	if err := r.db.First(&userModel, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return mappers.ToDomainUser(&userModel), nil
}

func (r *DefaultUserRepository) CreateUser(user *domain.User) error {
	userModel := mappers.ToGORMUser(user)
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	return nil
}
