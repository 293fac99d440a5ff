package ports

import (
	"context"

	"github.com/synchub/attendance/internal/core/domain"
)

// ItemRepository persists the inventory register.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	FindByID(ctx context.Context, id uint) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id uint) error
}

// ItemInput carries the editable item fields.
type ItemInput struct {
	Name        string
	Description string
	Quantity    uint
	Location    string
}

type InventoryService interface {
	Add(ctx context.Context, in ItemInput) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	Edit(ctx context.Context, id uint, in ItemInput) (*domain.Item, error)
	Remove(ctx context.Context, id uint) error
}
