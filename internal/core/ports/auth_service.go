package ports

import (
	"context"

	"github.com/synchub/attendance/internal/core/domain"
)

// RegisterInput is the signup payload after transport-level validation.
type RegisterInput struct {
	StudentNumber string
	FirstName     string
	LastName      string
	Email         string
	Password      string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, studentNumber, password string) (string, *domain.User, error)
}
