package service

import (
	"context"
	"fmt"

	"hospital-inventory-dashboard/internal/apiclient"
	"hospital-inventory-dashboard/internal/models"
)

type HospitalService struct {
	client *apiclient.Client
}

func NewHospitalService(client *apiclient.Client) *HospitalService {
	return &HospitalService{client: client}
}

// List retrieves all hospitals visible to the current user
func (s *HospitalService) List(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := s.client.Get(ctx, "/api/hospitals/", &hospitals)
	return hospitals, err
}

func (s *HospitalService) Get(ctx context.Context, id uint) (*models.Hospital, error) {
	var hospital models.Hospital
	if err := s.client.Get(ctx, fmt.Sprintf("/api/hospitals/%d/", id), &hospital); err != nil {
		return nil, err
	}
	return &hospital, nil
}

// Create returns the hospital with its server-assigned id
func (s *HospitalService) Create(ctx context.Context, hospital models.Hospital) (*models.Hospital, error) {
	var created models.Hospital
	if err := s.client.Post(ctx, "/api/hospitals/", hospital, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *HospitalService) Update(ctx context.Context, id uint, update models.HospitalUpdate) (*models.Hospital, error) {
	var updated models.Hospital
	if err := s.client.Patch(ctx, fmt.Sprintf("/api/hospitals/%d/", id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *HospitalService) Delete(ctx context.Context, id uint) error {
	return s.client.Delete(ctx, fmt.Sprintf("/api/hospitals/%d/", id), nil)
}

// Inventory lists the inventory rows of one hospital
func (s *HospitalService) Inventory(ctx context.Context, hospitalID uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.client.Get(ctx, fmt.Sprintf("/api/hospitals/%d/inventory/", hospitalID), &items)
	return items, err
}

// LowStock lists the rows of one hospital the backend flags as low
func (s *HospitalService) LowStock(ctx context.Context, hospitalID uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.client.Get(ctx, fmt.Sprintf("/api/hospitals/%d/low_stock/", hospitalID), &items)
	return items, err
}
