package postgres

import (
	"time"
)

type UserModel struct {
	Id        string `gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
