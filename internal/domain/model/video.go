package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Video represents a stored video in the domain. The media bytes live
// behind an external file host; MediaID is the host's identifier and
// TempLink is the host-issued expiring access URL.
type Video struct {
	ID          uuid.UUID
	MediaID     string
	UploaderID  int64
	Title       string
	Slug        string
	Description string
	TempLink    string
	IsPublished bool
	ViewCount   int64
	Stars       int64
	CreatedAt   time.Time
	PublishedAt *time.Time
}

var (
	ErrEmptyMediaID     = errors.New("media ID cannot be empty")
	ErrInvalidUploader  = errors.New("uploader ID must be positive")
	ErrTitleImmutable   = errors.New("title cannot be changed once set")
	ErrTitleTooLong     = errors.New("title exceeds maximum length of 255 characters")
	ErrSlugImmutable    = errors.New("slug cannot be changed once assigned")
	ErrNotPublishable   = errors.New("video has no slug and cannot be published")
)

const maxTitleLength = 255

// NewVideo creates a new unpublished Video for an uploaded media file.
func NewVideo(uploaderID int64, mediaID string) (*Video, error) {
	if uploaderID <= 0 {
		return nil, ErrInvalidUploader
	}
	if mediaID == "" {
		return nil, ErrEmptyMediaID
	}

	return &Video{
		ID:         uuid.New(),
		MediaID:    mediaID,
		UploaderID: uploaderID,
		CreatedAt:  time.Now(),
	}, nil
}

// SetTitle assigns the title. A non-empty title can be set exactly once;
// subsequent attempts with a different value fail with ErrTitleImmutable.
func (v *Video) SetTitle(title string) error {
	if v.Title != "" {
		if title == v.Title {
			return nil
		}
		return ErrTitleImmutable
	}
	if len(title) > maxTitleLength {
		return ErrTitleTooLong
	}
	v.Title = title
	return nil
}

// AssignSlug records the slug derived from the first non-empty title.
// The slug is assigned exactly once and never recomputed.
func (v *Video) AssignSlug(slug string) error {
	if v.Slug != "" && v.Slug != slug {
		return ErrSlugImmutable
	}
	v.Slug = slug
	return nil
}

// Publish marks the video as publicly visible. PublishedAt is set on the
// first transition only; republishing after an unpublish keeps the
// original timestamp. A video without a slug cannot be published.
func (v *Video) Publish(now time.Time) error {
	if v.Slug == "" {
		return ErrNotPublishable
	}
	v.IsPublished = true
	if v.PublishedAt == nil {
		t := now
		v.PublishedAt = &t
	}
	return nil
}

// Unpublish hides the video from public listings.
func (v *Video) Unpublish() {
	v.IsPublished = false
}

// SetTempLink replaces the host-issued temporary URL.
func (v *Video) SetTempLink(link string) {
	v.TempLink = link
}

// HasTempLink reports whether the video currently has a temporary URL.
func (v *Video) HasTempLink() bool {
	return v.TempLink != ""
}
