package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User is a registered viewer/uploader identified by their messenger ID.
type User struct {
	ID         uuid.UUID
	TelegramID int64
	FullName   string
	StarsCount int64
	CreatedAt  time.Time
}

var (
	ErrInvalidTelegramID = errors.New("telegram ID must be positive")
	ErrEmptyFullName     = errors.New("full name cannot be empty")
)

// NewUser creates a new User.
func NewUser(telegramID int64, fullName string) (*User, error) {
	if telegramID <= 0 {
		return nil, ErrInvalidTelegramID
	}
	if fullName == "" {
		return nil, ErrEmptyFullName
	}

	return &User{
		ID:         uuid.New(),
		TelegramID: telegramID,
		FullName:   fullName,
		CreatedAt:  time.Now(),
	}, nil
}
