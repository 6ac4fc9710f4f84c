package repository

import "errors"

var (
	// ErrVideoNotFound is returned when a video cannot be found.
	ErrVideoNotFound = errors.New("video not found")

	// ErrDuplicateVideo is returned when attempting to create a video that already exists.
	ErrDuplicateVideo = errors.New("video already exists")

	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when attempting to register an already-known user.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrTagNotFound is returned when a tag cannot be found.
	ErrTagNotFound = errors.New("tag not found")

	// ErrDuplicateTag is returned when attempting to create a tag that already exists.
	ErrDuplicateTag = errors.New("tag already exists")

	// ErrSubscriptionNotFound is returned when a follow edge cannot be found.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrDuplicateSubscription is returned when the follow edge already exists.
	ErrDuplicateSubscription = errors.New("subscription already exists")
)
