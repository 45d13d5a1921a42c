package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"nutritrack/internal/domain"
)

type User struct {
	Id        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Email     string
	Password  string
}

func NewUser(email, password string) *User {
	now := time.Now()
	return &User{
		Id:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Email:     email,
		Password:  password,
	}
}

func (u *User) validate() error {
	if u.Email == "" {
		return fmt.Errorf("%w: email must not be empty", domain.ErrValidation)
	}
	if u.Password == "" {
		return fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
	}
	if u.CreatedAt.After(u.UpdatedAt) {
		return fmt.Errorf("%w: created_at must be before updated_at", domain.ErrValidation)
	}
	return nil
}

// HashPassword replaces the plaintext password with its bcrypt hash.
func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}
