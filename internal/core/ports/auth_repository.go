package ports

import (
	"context"

	"github.com/synchub/attendance/internal/core/domain"
)

// UserRepository persists member accounts.
type UserRepository interface {
	// Create stores the user and its groups, returning domain.ErrUserExists on
	// a duplicate student number.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByStudentNumber(ctx context.Context, studentNumber string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	AddToGroup(ctx context.Context, userID uint, group string) error
}
