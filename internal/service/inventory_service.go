package service

import (
	"context"
	"fmt"

	"hospital-inventory-dashboard/internal/apiclient"
	"hospital-inventory-dashboard/internal/models"
)

type InventoryService struct {
	client *apiclient.Client
}

func NewInventoryService(client *apiclient.Client) *InventoryService {
	return &InventoryService{client: client}
}

func (s *InventoryService) List(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.client.Get(ctx, "/api/hospitals/inventory/", &items)
	return items, err
}

func (s *InventoryService) Get(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.client.Get(ctx, fmt.Sprintf("/api/hospitals/inventory/%d/", id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *InventoryService) Create(ctx context.Context, item models.InventoryItem) (*models.InventoryItem, error) {
	var created models.InventoryItem
	if err := s.client.Post(ctx, "/api/hospitals/inventory/", item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *InventoryService) Update(ctx context.Context, id uint, update models.InventoryUpdate) (*models.InventoryItem, error) {
	var updated models.InventoryItem
	if err := s.client.Patch(ctx, fmt.Sprintf("/api/hospitals/inventory/%d/", id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *InventoryService) Delete(ctx context.Context, id uint) error {
	return s.client.Delete(ctx, fmt.Sprintf("/api/hospitals/inventory/%d/", id), nil)
}

func (s *InventoryService) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.client.Get(ctx, "/api/hospitals/inventory/low_stock/", &items)
	return items, err
}

func (s *InventoryService) OutOfStock(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.client.Get(ctx, "/api/hospitals/inventory/out_of_stock/", &items)
	return items, err
}
