package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type mockVideoRepository struct {
	CreateFunc              func(ctx context.Context, video *model.Video) error
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	GetByMediaIDFunc        func(ctx context.Context, mediaID string) (*model.Video, error)
	GetBySlugFunc           func(ctx context.Context, slug string) (*model.Video, error)
	UpdateFunc              func(ctx context.Context, video *model.Video) error
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error
	SlugExistsFunc          func(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	ListPublishedFunc       func(ctx context.Context, uploaderIDs []int64, offset, limit int) ([]*model.Video, error)
	ListByUploaderFunc      func(ctx context.Context, uploaderID int64, offset, limit int) ([]*model.Video, error)
	ListPageFunc            func(ctx context.Context, afterID uuid.UUID, limit int) ([]*model.Video, error)
	BulkUpdateTempLinksFunc func(ctx context.Context, updates []repository.TempLinkUpdate) error
	IncrementViewCountFunc  func(ctx context.Context, id uuid.UUID) error
	AddStarFunc             func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	return m.CreateFunc(ctx, video)
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockVideoRepository) GetByMediaID(ctx context.Context, mediaID string) (*model.Video, error) {
	return m.GetByMediaIDFunc(ctx, mediaID)
}

func (m *mockVideoRepository) GetBySlug(ctx context.Context, slug string) (*model.Video, error) {
	return m.GetBySlugFunc(ctx, slug)
}

func (m *mockVideoRepository) Update(ctx context.Context, video *model.Video) error {
	return m.UpdateFunc(ctx, video)
}

func (m *mockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockVideoRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	return m.SlugExistsFunc(ctx, slug, excludeID)
}

func (m *mockVideoRepository) ListPublished(ctx context.Context, uploaderIDs []int64, offset, limit int) ([]*model.Video, error) {
	return m.ListPublishedFunc(ctx, uploaderIDs, offset, limit)
}

func (m *mockVideoRepository) ListByUploader(ctx context.Context, uploaderID int64, offset, limit int) ([]*model.Video, error) {
	return m.ListByUploaderFunc(ctx, uploaderID, offset, limit)
}

func (m *mockVideoRepository) ListPage(ctx context.Context, afterID uuid.UUID, limit int) ([]*model.Video, error) {
	return m.ListPageFunc(ctx, afterID, limit)
}

func (m *mockVideoRepository) BulkUpdateTempLinks(ctx context.Context, updates []repository.TempLinkUpdate) error {
	return m.BulkUpdateTempLinksFunc(ctx, updates)
}

func (m *mockVideoRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return m.IncrementViewCountFunc(ctx, id)
}

func (m *mockVideoRepository) AddStar(ctx context.Context, id uuid.UUID) (int64, error) {
	return m.AddStarFunc(ctx, id)
}

type mockWordIndexRepository struct {
	ReplaceWordsFunc  func(ctx context.Context, videoID uuid.UUID, words []string) error
	FindByWordsFunc   func(ctx context.Context, words []string, offset, limit int) ([]repository.WordMatch, error)
	WordsForVideoFunc func(ctx context.Context, videoID uuid.UUID) ([]string, error)
}

func (m *mockWordIndexRepository) ReplaceWords(ctx context.Context, videoID uuid.UUID, words []string) error {
	return m.ReplaceWordsFunc(ctx, videoID, words)
}

func (m *mockWordIndexRepository) FindByWords(ctx context.Context, words []string, offset, limit int) ([]repository.WordMatch, error) {
	return m.FindByWordsFunc(ctx, words, offset, limit)
}

func (m *mockWordIndexRepository) WordsForVideo(ctx context.Context, videoID uuid.UUID) ([]string, error) {
	return m.WordsForVideoFunc(ctx, videoID)
}

type mockTagRepository struct {
	CreateFunc             func(ctx context.Context, tag *model.Tag) error
	ListFunc               func(ctx context.Context) ([]*model.Tag, error)
	GetByNamesFunc         func(ctx context.Context, names []string) ([]*model.Tag, error)
	ReplaceVideoTagsFunc   func(ctx context.Context, videoID uuid.UUID, tagIDs []uuid.UUID) error
	FindVideosByAnyTagFunc func(ctx context.Context, tags []string) ([]*model.Video, error)
	TagsForVideosFunc      func(ctx context.Context, videoIDs []uuid.UUID) (map[uuid.UUID][]string, error)
}

func (m *mockTagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return m.CreateFunc(ctx, tag)
}

func (m *mockTagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	return m.ListFunc(ctx)
}

func (m *mockTagRepository) GetByNames(ctx context.Context, names []string) ([]*model.Tag, error) {
	return m.GetByNamesFunc(ctx, names)
}

func (m *mockTagRepository) ReplaceVideoTags(ctx context.Context, videoID uuid.UUID, tagIDs []uuid.UUID) error {
	return m.ReplaceVideoTagsFunc(ctx, videoID, tagIDs)
}

func (m *mockTagRepository) FindVideosByAnyTag(ctx context.Context, tags []string) ([]*model.Video, error) {
	return m.FindVideosByAnyTagFunc(ctx, tags)
}

func (m *mockTagRepository) TagsForVideos(ctx context.Context, videoIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	return m.TagsForVideosFunc(ctx, videoIDs)
}

type mockUserRepository struct {
	CreateFunc            func(ctx context.Context, user *model.User) error
	GetByTelegramIDFunc   func(ctx context.Context, telegramID int64) (*model.User, error)
	CountVideosFunc       func(ctx context.Context, telegramID int64) (int64, error)
	RefreshStarsCountFunc func(ctx context.Context, telegramID int64) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *mockUserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return m.GetByTelegramIDFunc(ctx, telegramID)
}

func (m *mockUserRepository) CountVideos(ctx context.Context, telegramID int64) (int64, error) {
	return m.CountVideosFunc(ctx, telegramID)
}

func (m *mockUserRepository) RefreshStarsCount(ctx context.Context, telegramID int64) error {
	return m.RefreshStarsCountFunc(ctx, telegramID)
}

type mockSubscriptionRepository struct {
	CreateFunc   func(ctx context.Context, sub *model.Subscription) error
	DeleteFunc   func(ctx context.Context, fromUser, toUser int64) error
	ListFromFunc func(ctx context.Context, fromUser int64) ([]*model.Subscription, error)
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	return m.CreateFunc(ctx, sub)
}

func (m *mockSubscriptionRepository) Delete(ctx context.Context, fromUser, toUser int64) error {
	return m.DeleteFunc(ctx, fromUser, toUser)
}

func (m *mockSubscriptionRepository) ListFrom(ctx context.Context, fromUser int64) ([]*model.Subscription, error) {
	return m.ListFromFunc(ctx, fromUser)
}

type mockHistoryRepository struct {
	AddFunc        func(ctx context.Context, event *model.WatchEvent) error
	ListByUserFunc func(ctx context.Context, userID int64, offset, limit int) ([]*repository.WatchEntry, error)
}

func (m *mockHistoryRepository) Add(ctx context.Context, event *model.WatchEvent) error {
	return m.AddFunc(ctx, event)
}

func (m *mockHistoryRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*repository.WatchEntry, error) {
	return m.ListByUserFunc(ctx, userID, offset, limit)
}

// mockCache is an in-memory Cache good enough for service tests.
type mockCache struct {
	data map[string][]byte

	GetFunc            func(ctx context.Context, key string) ([]byte, error)
	SetFunc            func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc         func(ctx context.Context, keys ...string) error
	DeleteByPrefixFunc func(ctx context.Context, prefix string) error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return m.data[key], nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, keys...)
	}
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	if m.DeleteByPrefixFunc != nil {
		return m.DeleteByPrefixFunc(ctx, prefix)
	}
	for key := range m.data {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(m.data, key)
		}
	}
	return nil
}

type mockLinkResolver struct {
	ResolveFunc func(ctx context.Context, mediaID string) (string, error)
}

func (m *mockLinkResolver) Resolve(ctx context.Context, mediaID string) (string, error) {
	return m.ResolveFunc(ctx, mediaID)
}

type mockLinkHealthChecker struct {
	IsAliveFunc func(ctx context.Context, link string) bool
}

func (m *mockLinkHealthChecker) IsAlive(ctx context.Context, link string) bool {
	return m.IsAliveFunc(ctx, link)
}
