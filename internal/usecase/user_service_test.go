package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

func TestUserService_Register(t *testing.T) {
	known := map[int64]*model.User{}
	users := &mockUserRepository{
		GetByTelegramIDFunc: func(ctx context.Context, telegramID int64) (*model.User, error) {
			if user, ok := known[telegramID]; ok {
				return user, nil
			}
			return nil, repository.ErrUserNotFound
		},
		CreateFunc: func(ctx context.Context, user *model.User) error {
			known[user.TelegramID] = user
			return nil
		},
	}

	svc := NewUserService(users, newMockCache(), time.Minute, testLogger())

	first, created, err := svc.Register(context.Background(), 42, "Alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if !created {
		t.Error("first Register() created = false, want true")
	}

	second, created, err := svc.Register(context.Background(), 42, "Alice Again")
	if err != nil {
		t.Fatalf("second Register() error = %v", err)
	}
	if created {
		t.Error("second Register() created = true, want false")
	}
	if second.ID != first.ID {
		t.Error("repeat registration returned a different user")
	}
}

func TestUserService_Register_LosesCreateRace(t *testing.T) {
	winner, _ := model.NewUser(42, "Winner")
	calls := 0
	users := &mockUserRepository{
		GetByTelegramIDFunc: func(ctx context.Context, telegramID int64) (*model.User, error) {
			calls++
			if calls == 1 {
				return nil, repository.ErrUserNotFound
			}
			return winner, nil
		},
		CreateFunc: func(ctx context.Context, user *model.User) error {
			return repository.ErrDuplicateUser
		},
	}

	svc := NewUserService(users, newMockCache(), time.Minute, testLogger())
	user, created, err := svc.Register(context.Background(), 42, "Loser")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if created {
		t.Error("created = true, want false after losing the race")
	}
	if user.ID != winner.ID {
		t.Error("Register() did not return the winning row")
	}
}

func TestUserService_GetProfile_Caches(t *testing.T) {
	user, _ := model.NewUser(42, "Alice")
	lookups := 0
	users := &mockUserRepository{
		GetByTelegramIDFunc: func(ctx context.Context, telegramID int64) (*model.User, error) {
			lookups++
			return user, nil
		},
		CountVideosFunc: func(ctx context.Context, telegramID int64) (int64, error) {
			return 3, nil
		},
	}

	cache := newMockCache()
	svc := NewUserService(users, cache, time.Minute, testLogger())

	for i := 0; i < 2; i++ {
		profile, err := svc.GetProfile(context.Background(), 42)
		if err != nil {
			t.Fatalf("GetProfile() error = %v", err)
		}
		if profile.VideoCount != 3 {
			t.Errorf("VideoCount = %d, want 3", profile.VideoCount)
		}
	}

	if lookups != 1 {
		t.Errorf("repository hit %d times, want 1", lookups)
	}

	// Invalidation drops the cached profile.
	if err := NewCacheInvalidator(cache).OnUserMutated(context.Background(), 42); err != nil {
		t.Fatalf("OnUserMutated() error = %v", err)
	}
	if _, err := svc.GetProfile(context.Background(), 42); err != nil {
		t.Fatalf("GetProfile() after invalidation error = %v", err)
	}
	if lookups != 2 {
		t.Errorf("repository hit %d times after invalidation, want 2", lookups)
	}
}
