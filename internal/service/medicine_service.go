package service

import (
	"context"
	"fmt"
	"net/url"

	"hospital-inventory-dashboard/internal/apiclient"
	"hospital-inventory-dashboard/internal/models"
)

type MedicineService struct {
	client *apiclient.Client
}

func NewMedicineService(client *apiclient.Client) *MedicineService {
	return &MedicineService{client: client}
}

func (s *MedicineService) List(ctx context.Context) ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := s.client.Get(ctx, "/api/medicines/", &medicines)
	return medicines, err
}

func (s *MedicineService) Get(ctx context.Context, id uint) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := s.client.Get(ctx, fmt.Sprintf("/api/medicines/%d/", id), &medicine); err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (s *MedicineService) Create(ctx context.Context, medicine models.Medicine) (*models.Medicine, error) {
	var created models.Medicine
	if err := s.client.Post(ctx, "/api/medicines/", medicine, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *MedicineService) Update(ctx context.Context, id uint, update models.MedicineUpdate) (*models.Medicine, error) {
	var updated models.Medicine
	if err := s.client.Patch(ctx, fmt.Sprintf("/api/medicines/%d/", id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MedicineService) Delete(ctx context.Context, id uint) error {
	return s.client.Delete(ctx, fmt.Sprintf("/api/medicines/%d/", id), nil)
}

func (s *MedicineService) Essential(ctx context.Context) ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := s.client.Get(ctx, "/api/medicines/essential/", &medicines)
	return medicines, err
}

func (s *MedicineService) ByCategory(ctx context.Context, category string) ([]models.Medicine, error) {
	var medicines []models.Medicine
	path := "/api/medicines/by_category/?" + url.Values{"category": {category}}.Encode()
	err := s.client.Get(ctx, path, &medicines)
	return medicines, err
}
