package model

import (
	"errors"
	"time"
)

// Subscription is a follow edge between two users.
type Subscription struct {
	FromUser  int64
	ToUser    int64
	CreatedAt time.Time
}

var ErrSelfSubscription = errors.New("cannot subscribe to yourself")

// NewSubscription creates a follow edge from one user to another.
func NewSubscription(fromUser, toUser int64) (*Subscription, error) {
	if fromUser <= 0 || toUser <= 0 {
		return nil, ErrInvalidTelegramID
	}
	if fromUser == toUser {
		return nil, ErrSelfSubscription
	}

	return &Subscription{
		FromUser:  fromUser,
		ToUser:    toUser,
		CreatedAt: time.Now(),
	}, nil
}
