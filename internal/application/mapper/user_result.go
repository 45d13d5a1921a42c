package mapper

import (
	"nutritrack/internal/application/common"
	"nutritrack/internal/domain/entities"
)

func NewUserResultFromEntity(user *entities.User) *common.UserResult {
	return &common.UserResult{
		Id:        user.Id,
		CreatedAt: user.CreatedAt,
		Email:     user.Email,
	}
}
