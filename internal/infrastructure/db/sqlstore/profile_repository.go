package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

var _ ports.ProfileRepository = (*ProfileRepository)(nil)

func (r *ProfileRepository) Find(ctx context.Context, userID uint) (*domain.Profile, error) {
	var m profileModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.Profile{
		UserID:               m.UserID,
		Bio:                  m.Bio,
		Theme:                m.Theme,
		NotificationsEnabled: m.NotificationsEnabled,
	}, nil
}

// Save upserts on user_id.
func (r *ProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	m := profileModel{
		UserID:               profile.UserID,
		Bio:                  profile.Bio,
		Theme:                profile.Theme,
		NotificationsEnabled: profile.NotificationsEnabled,
	}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"bio", "theme", "notifications_enabled"}),
		}).
		Create(&m).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.ErrUserNotFound
	}
	return err
}
