package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

var _ ports.ItemRepository = (*ItemRepository)(nil)

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	m := itemModel{
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		Location:    item.Location,
		DateAdded:   item.DateAdded,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	item.ID = m.ID
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	var m itemModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	item := m.toDomain()
	return &item, nil
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	var rows []itemModel
	if err := r.db.WithContext(ctx).Order("date_added desc, id desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Item, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	res := r.db.WithContext(ctx).
		Model(&itemModel{ID: item.ID}).
		Updates(map[string]interface{}{
			"name":        item.Name,
			"description": item.Description,
			"quantity":    item.Quantity,
			"location":    item.Location,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&itemModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
