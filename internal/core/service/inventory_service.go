package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

type InventoryService struct {
	repo ports.ItemRepository
	log  zerolog.Logger
}

func NewInventoryService(repo ports.ItemRepository, log zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, log: log}
}

func (s *InventoryService) Add(ctx context.Context, in ports.ItemInput) (*domain.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	item := &domain.Item{
		Name:        name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Location:    in.Location,
		DateAdded:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	return item, nil
}

func (s *InventoryService) List(ctx context.Context) ([]domain.Item, error) {
	return s.repo.List(ctx)
}

func (s *InventoryService) Edit(ctx context.Context, id uint, in ports.ItemInput) (*domain.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		item.Name = name
	}
	item.Description = in.Description
	item.Quantity = in.Quantity
	item.Location = in.Location

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("edit item: %w", err)
	}
	return item, nil
}

func (s *InventoryService) Remove(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	s.log.Info().Uint("item_id", id).Msg("item removed")
	return nil
}
