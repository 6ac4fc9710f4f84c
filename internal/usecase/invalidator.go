package usecase

import (
	"context"
	"fmt"

	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// CacheInvalidator drops cached read results after a mutation so the
// next read observes the new state. Mutations call through it before
// reporting success; a failed invalidation fails the mutation rather
// than leaving stale pages behind.
type CacheInvalidator struct {
	cache repository.Cache
}

func NewCacheInvalidator(cache repository.Cache) *CacheInvalidator {
	return &CacheInvalidator{cache: cache}
}

// OnVideoMutated clears every cached listing and search page, plus the
// uploader's profile since its video count may have changed.
func (ci *CacheInvalidator) OnVideoMutated(ctx context.Context, uploaderID int64) error {
	for _, prefix := range []string{videoListPrefix, wordSearchPrefix, tagSearchPrefix} {
		if err := ci.cache.DeleteByPrefix(ctx, prefix); err != nil {
			return fmt.Errorf("invalidate %q: %w", prefix, err)
		}
	}
	if err := ci.cache.Delete(ctx, userKey(uploaderID)); err != nil {
		return fmt.Errorf("invalidate uploader profile: %w", err)
	}
	return nil
}

func (ci *CacheInvalidator) OnUserMutated(ctx context.Context, telegramID int64) error {
	if err := ci.cache.Delete(ctx, userKey(telegramID)); err != nil {
		return fmt.Errorf("invalidate user profile: %w", err)
	}
	return nil
}

func (ci *CacheInvalidator) OnSubscriptionMutated(ctx context.Context, fromUser int64) error {
	if err := ci.cache.Delete(ctx, subsKey(fromUser)); err != nil {
		return fmt.Errorf("invalidate subscriptions: %w", err)
	}
	return nil
}

func (ci *CacheInvalidator) OnTagMutated(ctx context.Context) error {
	if err := ci.cache.Delete(ctx, tagListKey); err != nil {
		return fmt.Errorf("invalidate tag list: %w", err)
	}
	if err := ci.cache.DeleteByPrefix(ctx, tagSearchPrefix); err != nil {
		return fmt.Errorf("invalidate tag searches: %w", err)
	}
	return nil
}
