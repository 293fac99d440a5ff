package ports

import (
	"context"

	"github.com/synchub/attendance/internal/core/domain"
)

// ProfileRepository persists per-user preferences.
type ProfileRepository interface {
	// Find returns (nil, nil) when the user never saved a profile.
	Find(ctx context.Context, userID uint) (*domain.Profile, error)
	Save(ctx context.Context, profile *domain.Profile) error
}

type ProfileService interface {
	Get(ctx context.Context, userID uint) (*domain.Profile, error)
	Update(ctx context.Context, profile domain.Profile) (*domain.Profile, error)
}
