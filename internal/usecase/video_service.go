package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/pagination"
	"github.com/hszk-dev/vidshare/internal/slug"
	"github.com/google/uuid"
)

const maxSlugLength = 255

// CreateVideoInput registers a freshly uploaded media file.
type CreateVideoInput struct {
	UploaderID int64
	MediaID    string
}

// EditVideoInput carries the mutable fields of a video. Nil pointers
// leave the corresponding field untouched; a nil Tags slice keeps the
// current tag set.
type EditVideoInput struct {
	Title       *string
	Description *string
	Publish     *bool
	Tags        []string
}

// ListVideosInput filters the published catalog. Uploader narrows the
// listing to a single author and includes their unpublished videos;
// UploaderIDs narrows to published videos by any of the given authors.
type ListVideosInput struct {
	Uploader    *int64
	UploaderIDs []int64
	Cursor      string
	PageSize    int
}

type VideoPage struct {
	Videos     []*model.Video `json:"videos"`
	NextCursor string         `json:"next_cursor"`
}

type VideoService interface {
	Create(ctx context.Context, input CreateVideoInput) (*model.Video, error)
	GetByMediaID(ctx context.Context, mediaID string) (*model.Video, error)
	GetBySlug(ctx context.Context, slug string) (*model.Video, error)
	Edit(ctx context.Context, mediaID string, input EditVideoInput) (*model.Video, error)
	Delete(ctx context.Context, mediaID string) error
	List(ctx context.Context, input ListVideosInput) (*VideoPage, error)
	RegisterView(ctx context.Context, mediaID string) error
	AddStar(ctx context.Context, mediaID string) (int64, error)
}

type videoService struct {
	videos      repository.VideoRepository
	words       repository.WordIndexRepository
	tags        repository.TagRepository
	users       repository.UserRepository
	resolver    repository.LinkResolver
	invalidator *CacheInvalidator
	cache       repository.Cache
	ttl         time.Duration
	logger      *slog.Logger
}

func NewVideoService(
	videos repository.VideoRepository,
	words repository.WordIndexRepository,
	tags repository.TagRepository,
	users repository.UserRepository,
	resolver repository.LinkResolver,
	invalidator *CacheInvalidator,
	cache repository.Cache,
	ttl time.Duration,
	logger *slog.Logger,
) VideoService {
	return &videoService{
		videos:      videos,
		words:       words,
		tags:        tags,
		users:       users,
		resolver:    resolver,
		invalidator: invalidator,
		cache:       cache,
		ttl:         ttl,
		logger:      logger,
	}
}

func (s *videoService) Create(ctx context.Context, input CreateVideoInput) (*model.Video, error) {
	if _, err := s.users.GetByTelegramID(ctx, input.UploaderID); err != nil {
		return nil, fmt.Errorf("lookup uploader: %w", err)
	}

	video, err := model.NewVideo(input.UploaderID, input.MediaID)
	if err != nil {
		return nil, err
	}

	// The first temporary link is best effort. The renewal sweep will
	// fill it in if the file host is unreachable right now.
	if link, err := s.resolver.Resolve(ctx, video.MediaID); err != nil {
		s.logger.Warn("initial link resolution failed",
			slog.String("media_id", video.MediaID),
			slog.String("error", err.Error()))
	} else {
		video.SetTempLink(link)
	}

	if err := s.videos.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	if err := s.invalidator.OnVideoMutated(ctx, video.UploaderID); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *videoService) GetByMediaID(ctx context.Context, mediaID string) (*model.Video, error) {
	return s.videos.GetByMediaID(ctx, mediaID)
}

func (s *videoService) GetBySlug(ctx context.Context, slugStr string) (*model.Video, error) {
	return s.videos.GetBySlug(ctx, slugStr)
}

func (s *videoService) Edit(ctx context.Context, mediaID string, input EditVideoInput) (*model.Video, error) {
	video, err := s.videos.GetByMediaID(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := video.SetTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		video.Description = *input.Description
	}

	reindex := false
	if video.Slug == "" && video.Title != "" {
		if base := slug.Make(video.Title); base != "" {
			unique, err := s.uniqueSlug(ctx, base, video.ID)
			if err != nil {
				return nil, err
			}
			if err := video.AssignSlug(unique); err != nil {
				return nil, err
			}
			reindex = true
		}
	}

	if input.Publish != nil {
		if *input.Publish {
			if err := video.Publish(time.Now()); err != nil {
				return nil, err
			}
		} else {
			video.Unpublish()
		}
	}

	if err := s.videos.Update(ctx, video); err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}

	if reindex {
		if err := s.words.ReplaceWords(ctx, video.ID, slug.Words(video.Slug)); err != nil {
			return nil, fmt.Errorf("index slug words: %w", err)
		}
	}

	if input.Tags != nil {
		if err := s.replaceTags(ctx, video.ID, input.Tags); err != nil {
			return nil, err
		}
	}

	if err := s.invalidator.OnVideoMutated(ctx, video.UploaderID); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *videoService) replaceTags(ctx context.Context, videoID uuid.UUID, names []string) error {
	tags, err := s.tags.GetByNames(ctx, names)
	if err != nil {
		return fmt.Errorf("resolve tags: %w", err)
	}
	if len(tags) != len(names) {
		return repository.ErrTagNotFound
	}
	ids := make([]uuid.UUID, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	if err := s.tags.ReplaceVideoTags(ctx, videoID, ids); err != nil {
		return fmt.Errorf("replace video tags: %w", err)
	}
	return nil
}

// uniqueSlug appends -1, -2, ... to base until no other video holds the
// candidate. The base is truncated first so a suffixed candidate still
// fits the column.
func (s *videoService) uniqueSlug(ctx context.Context, base string, selfID uuid.UUID) (string, error) {
	if len(base) > maxSlugLength {
		base = base[:maxSlugLength]
	}
	candidate := base
	for n := 1; ; n++ {
		exists, err := s.videos.SlugExists(ctx, candidate, selfID)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		suffix := fmt.Sprintf("-%d", n)
		trimmed := base
		if len(trimmed)+len(suffix) > maxSlugLength {
			trimmed = trimmed[:maxSlugLength-len(suffix)]
		}
		candidate = trimmed + suffix
	}
}

func (s *videoService) Delete(ctx context.Context, mediaID string) error {
	video, err := s.videos.GetByMediaID(ctx, mediaID)
	if err != nil {
		return err
	}
	if err := s.videos.Delete(ctx, video.ID); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	// Stars attached to the deleted video no longer count toward the
	// uploader's total.
	if err := s.users.RefreshStarsCount(ctx, video.UploaderID); err != nil {
		return fmt.Errorf("refresh stars count: %w", err)
	}
	return s.invalidator.OnVideoMutated(ctx, video.UploaderID)
}

func (s *videoService) List(ctx context.Context, input ListVideosInput) (*VideoPage, error) {
	cur, err := pagination.Decode(input.Cursor)
	if err != nil {
		return nil, err
	}
	size := pagination.ClampPageSize(input.PageSize)

	var key string
	if input.Uploader != nil {
		key = uploaderListKey(*input.Uploader, input.Cursor, size)
	} else {
		key = videoListKey(input.UploaderIDs, input.Cursor, size)
	}
	if data, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("listing cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if data != nil {
		var page VideoPage
		if err := json.Unmarshal(data, &page); err == nil {
			return &page, nil
		}
	}

	var videos []*model.Video
	if input.Uploader != nil {
		videos, err = s.videos.ListByUploader(ctx, *input.Uploader, cur.Offset, size+1)
	} else {
		videos, err = s.videos.ListPublished(ctx, input.UploaderIDs, cur.Offset, size+1)
	}
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	page := &VideoPage{Videos: videos}
	if len(videos) > size {
		page.Videos = videos[:size]
		page.NextCursor = pagination.Cursor{Offset: cur.Offset + size}.Encode()
	}

	if data, err := json.Marshal(page); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("listing cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return page, nil
}

func (s *videoService) RegisterView(ctx context.Context, mediaID string) error {
	video, err := s.videos.GetByMediaID(ctx, mediaID)
	if err != nil {
		return err
	}
	if err := s.videos.IncrementViewCount(ctx, video.ID); err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return s.invalidator.OnVideoMutated(ctx, video.UploaderID)
}

func (s *videoService) AddStar(ctx context.Context, mediaID string) (int64, error) {
	video, err := s.videos.GetByMediaID(ctx, mediaID)
	if err != nil {
		return 0, err
	}
	stars, err := s.videos.AddStar(ctx, video.ID)
	if err != nil {
		return 0, fmt.Errorf("add star: %w", err)
	}
	if err := s.invalidator.OnVideoMutated(ctx, video.UploaderID); err != nil {
		return 0, err
	}
	return stars, nil
}
