package mappers

import (
	"github.com/gigvault/escrow-service/internal/domain"
	"github.com/gigvault/escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainUser(model *models.UserModel) *domain.User {
	return &domain.User{
		ID:        model.ID,
		Email:     model.Email,
		Name:      model.Name,
		Role:      domain.UserRole(model.Role),
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMUser(user *domain.User) *models.UserModel {
	return &models.UserModel{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
