package service

import (
	"context"
	"fmt"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

type ProfileService struct {
	repo ports.ProfileRepository
}

func NewProfileService(repo ports.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the stored profile or the defaults.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*domain.Profile, error) {
	p, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if p == nil {
		d := domain.DefaultProfile(userID)
		return &d, nil
	}
	return p, nil
}

func (s *ProfileService) Update(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	if p.Theme == "" {
		p.Theme = domain.ThemeLight
	}
	if p.Theme != domain.ThemeLight && p.Theme != domain.ThemeDark {
		return nil, domain.NewValidationError("theme", "must be one of: light dark")
	}
	if err := s.repo.Save(ctx, &p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &p, nil
}
