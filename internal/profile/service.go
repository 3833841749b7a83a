// File: internal/profile/service.go
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adventure_backend/internal/common"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Service defines the profile operations available to an authenticated user.
type Service interface {
	GetProfile(ctx context.Context, uid string) (*Profile, error)
	UpdateBio(ctx context.Context, uid string, req UpdateBioRequest) (*Profile, error)
}

type service struct {
	repo     Repository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService creates a new profile service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		validate: validator.New(),
		logger:   logger.Named("ProfileService"),
	}
}

func (s *service) GetProfile(ctx context.Context, uid string) (*Profile, error) {
	p, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Info("Profile not found", zap.String("uid", uid))
			return nil, err
		}
		s.logger.Error("Error reading profile", zap.String("uid", uid), zap.Error(err))
		return nil, fmt.Errorf("could not load profile: %w", err)
	}
	return p, nil
}

func (s *service) UpdateBio(ctx context.Context, uid string, req UpdateBioRequest) (*Profile, error) {
	req.Bio = strings.TrimSpace(req.Bio)
	if err := s.validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return nil, common.NewValidationAPIError(common.FormatValidationErrors(ve))
		}
		return nil, common.ErrBadRequest.WithDetails(err.Error())
	}

	if err := s.repo.UpdateBio(ctx, uid, req.Bio); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("Failed to update bio", zap.String("uid", uid), zap.Error(err))
		return nil, fmt.Errorf("could not update bio: %w", err)
	}
	s.logger.Info("Bio updated", zap.String("uid", uid))
	return s.GetProfile(ctx, uid)
}
