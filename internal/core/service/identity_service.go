package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

// IdentityService manages officer records.
type IdentityService struct {
	repo   ports.IdentityRepository
	policy domain.IdentifierPolicy
	log    zerolog.Logger
}

func NewIdentityService(repo ports.IdentityRepository, policy domain.IdentifierPolicy, log zerolog.Logger) *IdentityService {
	return &IdentityService{repo: repo, policy: policy, log: log}
}

func (s *IdentityService) Register(ctx context.Context, in ports.IdentityInput) (*domain.Identity, error) {
	identifier, err := s.policy.Normalize(in.Identifier)
	if err != nil {
		return nil, domain.NewValidationError("identifier", strings.TrimPrefix(err.Error(), domain.ErrMalformedIdentifier.Error()+": "))
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	identity := &domain.Identity{
		Identifier: identifier,
		Name:       name,
		Position:   strings.TrimSpace(in.Position),
	}
	if err := s.repo.Create(ctx, identity); err != nil {
		return nil, fmt.Errorf("register officer: %w", err)
	}

	s.log.Info().Str("identifier", identifier).Msg("officer registered")
	return identity, nil
}

func (s *IdentityService) Get(ctx context.Context, id uint) (*domain.Identity, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *IdentityService) List(ctx context.Context) ([]domain.Identity, error) {
	return s.repo.List(ctx)
}

// Edit updates name and position; blank fields keep their stored value.
// A differing identifier is rejected.
func (s *IdentityService) Edit(ctx context.Context, id uint, in ports.IdentityInput) (*domain.Identity, error) {
	identity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Identifier != "" && strings.TrimSpace(in.Identifier) != identity.Identifier {
		return nil, domain.NewValidationError("identifier", "cannot be changed")
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		identity.Name = name
	}
	if position := strings.TrimSpace(in.Position); position != "" {
		identity.Position = position
	}

	if err := s.repo.Update(ctx, identity); err != nil {
		return nil, fmt.Errorf("edit officer: %w", err)
	}
	return identity, nil
}

// Remove deletes the officer together with its time logs.
func (s *IdentityService) Remove(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove officer: %w", err)
	}
	s.log.Info().Uint("officer_id", id).Msg("officer removed")
	return nil
}
