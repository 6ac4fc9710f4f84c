package model

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Tag is a user-assigned label. Tags are created explicitly and matched
// exactly; no normalization happens beyond whitespace trimming.
type Tag struct {
	ID   uuid.UUID
	Name string
}

var ErrEmptyTag = errors.New("tag cannot be empty")

const maxTagLength = 50

var ErrTagTooLong = errors.New("tag exceeds maximum length of 50 characters")

// NewTag creates a new Tag.
func NewTag(name string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTag
	}
	if len(name) > maxTagLength {
		return nil, ErrTagTooLong
	}

	return &Tag{
		ID:   uuid.New(),
		Name: name,
	}, nil
}
