package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

// IdentityResolver maps a normalized identifier to an identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, identifier string) (*domain.Identity, error)
}

type tieredResolver struct {
	officers ports.IdentityRepository
	members  ports.MemberRegistry
	log      zerolog.Logger
}

// NewIdentityResolver looks identifiers up in the officer store first. When
// members is non-nil, an unknown identifier that matches a registered member
// is provisioned as a new officer before the scan continues.
func NewIdentityResolver(officers ports.IdentityRepository, members ports.MemberRegistry, log zerolog.Logger) IdentityResolver {
	return &tieredResolver{officers: officers, members: members, log: log}
}

func (r *tieredResolver) Resolve(ctx context.Context, identifier string) (*domain.Identity, error) {
	identity, err := r.officers.FindByIdentifier(ctx, identifier)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, domain.ErrIdentityNotFound) || r.members == nil {
		return nil, err
	}

	member, err := r.members.FindMember(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("resolve member: %w", err)
	}

	identity = &domain.Identity{
		Identifier: member.Identifier,
		Name:       member.FullName,
		Position:   domain.GroupOfficer,
	}
	if err := r.officers.Create(ctx, identity); err != nil {
		// Another scan provisioned the same member first.
		if errors.Is(err, domain.ErrIdentityExists) {
			return r.officers.FindByIdentifier(ctx, identifier)
		}
		return nil, fmt.Errorf("provision officer: %w", err)
	}

	r.log.Info().Str("identifier", identifier).Str("name", identity.Name).Msg("officer provisioned from member registry")
	return identity, nil
}
