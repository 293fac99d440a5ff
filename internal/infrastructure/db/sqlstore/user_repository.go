package sqlstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

// UserRepository implements ports.UserRepository. It also serves as the
// member registry consulted by the scan resolver.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var (
	_ ports.UserRepository = (*UserRepository)(nil)
	_ ports.MemberRegistry = (*UserRepository)(nil)
)

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := userModel{
		StudentNumber: user.StudentNumber,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		IsSuperuser:   user.IsSuperuser,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range user.Groups {
			g, err := findOrCreateGroup(tx, name)
			if err != nil {
				return err
			}
			m.Groups = append(m.Groups, *g)
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindByStudentNumber(ctx context.Context, studentNumber string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Preload("Groups").Where("student_number = ?", studentNumber).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Preload("Groups").First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

// AddToGroup is idempotent; the group is created on first use.
func (r *UserRepository) AddToGroup(ctx context.Context, userID uint, group string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m userModel
		if err := tx.First(&m, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		g, err := findOrCreateGroup(tx, group)
		if err != nil {
			return err
		}
		return tx.Model(&m).Association("Groups").Append(g)
	})
}

// FindMember resolves a scanned identifier against registered student numbers.
func (r *UserRepository) FindMember(ctx context.Context, identifier string) (*domain.Member, error) {
	user, err := r.FindByStudentNumber(ctx, identifier)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(user.FullName())
	if name == "" {
		name = user.StudentNumber
	}
	return &domain.Member{Identifier: user.StudentNumber, FullName: name}, nil
}

func findOrCreateGroup(tx *gorm.DB, name string) (*groupModel, error) {
	g := groupModel{Name: name}
	if err := tx.Where(groupModel{Name: name}).FirstOrCreate(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}
