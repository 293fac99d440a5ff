package service

import (
	"context"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements signup and login for member accounts.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	studentNumber, err := domain.DefaultIdentifierPolicy.Normalize(in.StudentNumber)
	if err != nil {
		return nil, domain.NewValidationError("student_number", "must be exactly 7 digits")
	}
	verr := &domain.ValidationError{Fields: map[string]string{}}
	if strings.TrimSpace(in.FirstName) == "" {
		verr.Fields["first_name"] = "is required"
	}
	if strings.TrimSpace(in.LastName) == "" {
		verr.Fields["last_name"] = "is required"
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			verr.Fields["email"] = "must be a valid email"
		}
	}
	if len(in.Password) < minPasswordLength {
		verr.Fields["password"] = "must be at least " + strconv.Itoa(minPasswordLength) + " characters"
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		StudentNumber: studentNumber,
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Email:         in.Email,
		PasswordHash:  string(hash),
		Groups:        []string{domain.GroupOfficer},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return s.repo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, studentNumber, password string) (string, *domain.User, error) {
	if studentNumber == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByStudentNumber(ctx, strings.TrimSpace(studentNumber))
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":            strconv.FormatUint(uint64(user.ID), 10),
		"student_number": user.StudentNumber,
		"groups":         user.Groups,
		"superuser":      user.IsSuperuser,
		"exp":            time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
