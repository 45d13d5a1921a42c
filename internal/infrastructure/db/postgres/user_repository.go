package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nutritrack/internal/domain"
	"nutritrack/internal/domain/entities"
	"nutritrack/internal/domain/repositories"
	"nutritrack/internal/infrastructure/db"
)

type UserRepository struct {
	provider db.Provider
}

func NewUserRepository(provider db.Provider) repositories.UserRepository {
	return &UserRepository{provider: provider}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	userEntity := user.GetUser()

	// Hash password before saving
	if err := userEntity.HashPassword(); err != nil {
		return nil, err
	}

	userModel := UserModel{
		Id:        userEntity.Id.String(),
		CreatedAt: userEntity.CreatedAt,
		UpdatedAt: userEntity.UpdatedAt,
		Email:     userEntity.Email,
		Password:  userEntity.Password,
	}

	err := db.WithConnection(ctx, r.provider, func(tx *gorm.DB) error {
		return tx.Create(&userModel).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", userEntity.Email, err)
	}

	return r.mapToEntity(&userModel)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var userModel UserModel
	err := db.WithConnection(ctx, r.provider, func(tx *gorm.DB) error {
		return tx.Where("email = ?", email).First(&userModel).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", email, domain.ErrNotFound)
		}
		return nil, err
	}

	return r.mapToEntity(&userModel)
}

func (r *UserRepository) mapToEntity(userModel *UserModel) (*entities.User, error) {
	id, err := uuid.Parse(userModel.Id)
	if err != nil {
		return nil, fmt.Errorf("user id %q: %w", userModel.Id, err)
	}
	return &entities.User{
		Id:        id,
		CreatedAt: userModel.CreatedAt,
		UpdatedAt: userModel.UpdatedAt,
		Email:     userModel.Email,
		Password:  userModel.Password,
	}, nil
}
