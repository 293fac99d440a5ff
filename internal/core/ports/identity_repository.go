package ports

import (
	"context"

	"github.com/synchub/attendance/internal/core/domain"
)

// IdentityRepository persists officers (the primary identity store).
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	// FindByIdentifier returns domain.ErrIdentityNotFound when no officer matches.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Identity, error)
	FindByID(ctx context.Context, id uint) (*domain.Identity, error)
	List(ctx context.Context) ([]domain.Identity, error)
	// Update changes display fields only; the identifier is immutable.
	Update(ctx context.Context, identity *domain.Identity) error
	// Delete removes the officer and, by cascade, its ledger rows.
	Delete(ctx context.Context, id uint) error
}

// MemberRegistry is the optional second resolution tier: registered member
// accounts that are not yet officers.
type MemberRegistry interface {
	// FindMember returns domain.ErrUserNotFound when nobody matches.
	FindMember(ctx context.Context, identifier string) (*domain.Member, error)
}

// IdentityInput carries the editable officer fields.
type IdentityInput struct {
	Identifier string
	Name       string
	Position   string
}

// IdentityService is the officer CRUD use case.
type IdentityService interface {
	Register(ctx context.Context, in IdentityInput) (*domain.Identity, error)
	Get(ctx context.Context, id uint) (*domain.Identity, error)
	List(ctx context.Context) ([]domain.Identity, error)
	Edit(ctx context.Context, id uint, in IdentityInput) (*domain.Identity, error)
	Remove(ctx context.Context, id uint) error
}
