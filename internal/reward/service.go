// File: internal/reward/service.go
package reward

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Service exposes the rewards store.
type Service interface {
	ListActive(ctx context.Context) ([]Reward, error)
	SeedDemo(ctx context.Context) (int, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new reward service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Named("RewardService")}
}

func (s *service) ListActive(ctx context.Context) ([]Reward, error) {
	rewards, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("Failed to list rewards", zap.Error(err))
		return nil, fmt.Errorf("could not load rewards: %w", err)
	}
	return rewards, nil
}

// SeedDemo inserts DemoRewards into an empty collection.
func (s *service) SeedDemo(ctx context.Context) (int, error) {
	n, err := s.repo.SeedIfEmpty(ctx, DemoRewards())
	if err != nil {
		return 0, fmt.Errorf("could not seed rewards: %w", err)
	}
	if n == 0 {
		s.logger.Info("Rewards collection already populated; nothing seeded")
	} else {
		s.logger.Info("Seeded demo rewards", zap.Int("count", n))
	}
	return n, nil
}
