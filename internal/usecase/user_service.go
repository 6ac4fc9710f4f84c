package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// UserProfile is a user together with derived counters.
type UserProfile struct {
	User       *model.User `json:"user"`
	VideoCount int64       `json:"video_count"`
}

type UserService interface {
	// Register creates the user on first contact and is a no-op on
	// repeat calls. The boolean reports whether a new row was created.
	Register(ctx context.Context, telegramID int64, fullName string) (*model.User, bool, error)
	GetProfile(ctx context.Context, telegramID int64) (*UserProfile, error)
}

type userService struct {
	users  repository.UserRepository
	cache  repository.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewUserService(users repository.UserRepository, cache repository.Cache, ttl time.Duration, logger *slog.Logger) UserService {
	return &userService{users: users, cache: cache, ttl: ttl, logger: logger}
}

func (s *userService) Register(ctx context.Context, telegramID int64, fullName string) (*model.User, bool, error) {
	existing, err := s.users.GetByTelegramID(ctx, telegramID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, false, fmt.Errorf("lookup user: %w", err)
	}

	user, err := model.NewUser(telegramID, fullName)
	if err != nil {
		return nil, false, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost the race against a concurrent registration.
		if errors.Is(err, repository.ErrDuplicateUser) {
			existing, err := s.users.GetByTelegramID(ctx, telegramID)
			if err != nil {
				return nil, false, fmt.Errorf("lookup user after race: %w", err)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	return user, true, nil
}

func (s *userService) GetProfile(ctx context.Context, telegramID int64) (*UserProfile, error) {
	key := userKey(telegramID)
	if data, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("profile cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if data != nil {
		var profile UserProfile
		if err := json.Unmarshal(data, &profile); err == nil {
			return &profile, nil
		}
	}

	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	count, err := s.users.CountVideos(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("count videos: %w", err)
	}

	profile := &UserProfile{User: user, VideoCount: count}
	if data, err := json.Marshal(profile); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("profile cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return profile, nil
}
