package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, fromUser, toUser int64) error
	Unsubscribe(ctx context.Context, fromUser, toUser int64) error
	List(ctx context.Context, fromUser int64) ([]*model.Subscription, error)
}

type subscriptionService struct {
	subs        repository.SubscriptionRepository
	users       repository.UserRepository
	cache       repository.Cache
	ttl         time.Duration
	invalidator *CacheInvalidator
	logger      *slog.Logger
}

func NewSubscriptionService(
	subs repository.SubscriptionRepository,
	users repository.UserRepository,
	cache repository.Cache,
	ttl time.Duration,
	invalidator *CacheInvalidator,
	logger *slog.Logger,
) SubscriptionService {
	return &subscriptionService{
		subs:        subs,
		users:       users,
		cache:       cache,
		ttl:         ttl,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, fromUser, toUser int64) error {
	if _, err := s.users.GetByTelegramID(ctx, toUser); err != nil {
		return fmt.Errorf("lookup subscription target: %w", err)
	}

	sub, err := model.NewSubscription(fromUser, toUser)
	if err != nil {
		return err
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return err
	}
	return s.invalidator.OnSubscriptionMutated(ctx, fromUser)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, fromUser, toUser int64) error {
	if err := s.subs.Delete(ctx, fromUser, toUser); err != nil {
		return err
	}
	return s.invalidator.OnSubscriptionMutated(ctx, fromUser)
}

func (s *subscriptionService) List(ctx context.Context, fromUser int64) ([]*model.Subscription, error) {
	if _, err := s.users.GetByTelegramID(ctx, fromUser); err != nil {
		return nil, fmt.Errorf("lookup subscriber: %w", err)
	}

	key := subsKey(fromUser)
	if data, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("subscription cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if data != nil {
		var subs []*model.Subscription
		if err := json.Unmarshal(data, &subs); err == nil {
			return subs, nil
		}
	}

	subs, err := s.subs.ListFrom(ctx, fromUser)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(subs); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("subscription cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return subs, nil
}
