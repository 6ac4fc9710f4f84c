package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

func TestTagService_List_Caches(t *testing.T) {
	lookups := 0
	tags := &mockTagRepository{
		ListFunc: func(ctx context.Context) ([]*model.Tag, error) {
			lookups++
			tag, _ := model.NewTag("music")
			return []*model.Tag{tag}, nil
		},
		CreateFunc: func(ctx context.Context, tag *model.Tag) error { return nil },
	}

	cache := newMockCache()
	invalidator := NewCacheInvalidator(cache)
	svc := NewTagService(tags, cache, time.Minute, invalidator, testLogger())

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		got, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 1 || got[0].Name != "music" {
			t.Fatalf("List() = %+v, want one tag named music", got)
		}
	}
	if lookups != 1 {
		t.Errorf("repository hit %d times, want 1", lookups)
	}

	// Creating a tag invalidates the cached listing.
	if _, err := svc.Create(ctx, "live"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("List() after create error = %v", err)
	}
	if lookups != 2 {
		t.Errorf("repository hit %d times after create, want 2", lookups)
	}
}

func TestTagService_Create(t *testing.T) {
	tags := &mockTagRepository{
		CreateFunc: func(ctx context.Context, tag *model.Tag) error {
			return repository.ErrDuplicateTag
		},
	}
	svc := NewTagService(tags, newMockCache(), time.Minute, NewCacheInvalidator(newMockCache()), testLogger())

	if _, err := svc.Create(context.Background(), "music"); !errors.Is(err, repository.ErrDuplicateTag) {
		t.Errorf("Create() error = %v, want ErrDuplicateTag", err)
	}
	if _, err := svc.Create(context.Background(), "   "); !errors.Is(err, model.ErrEmptyTag) {
		t.Errorf("Create() error = %v, want ErrEmptyTag", err)
	}
}
