package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

// IdentityRepository implements ports.IdentityRepository over the officers table.
type IdentityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

var _ ports.IdentityRepository = (*IdentityRepository)(nil)

func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	m := officerModel{
		Identifier: identity.Identifier,
		Name:       identity.Name,
		Position:   identity.Position,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrIdentityExists
		}
		return err
	}
	*identity = m.toDomain()
	return nil
}

func (r *IdentityRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.Identity, error) {
	var m officerModel
	err := r.db.WithContext(ctx).Where("identifier = ?", identifier).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrIdentityNotFound
	}
	if err != nil {
		return nil, err
	}
	identity := m.toDomain()
	return &identity, nil
}

func (r *IdentityRepository) FindByID(ctx context.Context, id uint) (*domain.Identity, error) {
	var m officerModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrIdentityNotFound
	}
	if err != nil {
		return nil, err
	}
	identity := m.toDomain()
	return &identity, nil
}

func (r *IdentityRepository) List(ctx context.Context) ([]domain.Identity, error) {
	var rows []officerModel
	if err := r.db.WithContext(ctx).Order("name asc, id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Identity, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *IdentityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	res := r.db.WithContext(ctx).
		Model(&officerModel{ID: identity.ID}).
		Updates(map[string]interface{}{
			"name":     identity.Name,
			"position": identity.Position,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

// Delete removes the officer and its time logs in one transaction, so the
// cascade holds even where foreign keys are not enforced.
func (r *IdentityRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("officer_id = ?", id).Delete(&timeLogModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&officerModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrIdentityNotFound
		}
		return nil
	})
}
