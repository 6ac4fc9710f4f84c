package usecase

import (
	"context"
	"fmt"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/pagination"
)

type HistoryPage struct {
	Entries    []*repository.WatchEntry
	NextCursor string
}

type HistoryService interface {
	// RecordWatch appends a watch event and bumps the video's view count.
	RecordWatch(ctx context.Context, userID int64, mediaID string) error
	ListByUser(ctx context.Context, userID int64, cursor string, pageSize int) (*HistoryPage, error)
}

type historyService struct {
	history repository.HistoryRepository
	videos  repository.VideoRepository
}

func NewHistoryService(history repository.HistoryRepository, videos repository.VideoRepository) HistoryService {
	return &historyService{history: history, videos: videos}
}

func (s *historyService) RecordWatch(ctx context.Context, userID int64, mediaID string) error {
	video, err := s.videos.GetByMediaID(ctx, mediaID)
	if err != nil {
		return err
	}

	event, err := model.NewWatchEvent(video.ID, userID)
	if err != nil {
		return err
	}
	if err := s.history.Add(ctx, event); err != nil {
		return fmt.Errorf("record watch: %w", err)
	}
	if err := s.videos.IncrementViewCount(ctx, video.ID); err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

func (s *historyService) ListByUser(ctx context.Context, userID int64, cursor string, pageSize int) (*HistoryPage, error) {
	cur, err := pagination.Decode(cursor)
	if err != nil {
		return nil, err
	}
	size := pagination.ClampPageSize(pageSize)

	entries, err := s.history.ListByUser(ctx, userID, cur.Offset, size+1)
	if err != nil {
		return nil, fmt.Errorf("list watch history: %w", err)
	}

	page := &HistoryPage{Entries: entries}
	if len(entries) > size {
		page.Entries = entries[:size]
		page.NextCursor = pagination.Cursor{Offset: cur.Offset + size}.Encode()
	}
	return page, nil
}
