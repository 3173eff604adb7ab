package service

import (
	"context"
	"fmt"

	"hospital-inventory-dashboard/internal/apiclient"
	"hospital-inventory-dashboard/internal/models"
)

type AlertService struct {
	client *apiclient.Client
}

func NewAlertService(client *apiclient.Client) *AlertService {
	return &AlertService{client: client}
}

func (s *AlertService) List(ctx context.Context) ([]models.Alert, error) {
	var alerts []models.Alert
	err := s.client.Get(ctx, "/api/alerts/", &alerts)
	return alerts, err
}

func (s *AlertService) Get(ctx context.Context, id uint) (*models.Alert, error) {
	var alert models.Alert
	if err := s.client.Get(ctx, fmt.Sprintf("/api/alerts/%d/", id), &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

func (s *AlertService) Update(ctx context.Context, id uint, update models.AlertUpdate) (*models.Alert, error) {
	var updated models.Alert
	if err := s.client.Patch(ctx, fmt.Sprintf("/api/alerts/%d/", id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Acknowledge PATCHes the status unconditionally; repeating it is not special-cased
func (s *AlertService) Acknowledge(ctx context.Context, id uint) (*models.Alert, error) {
	return s.setStatus(ctx, id, models.AlertStatusAcknowledged)
}

func (s *AlertService) Resolve(ctx context.Context, id uint) (*models.Alert, error) {
	return s.setStatus(ctx, id, models.AlertStatusResolved)
}

func (s *AlertService) setStatus(ctx context.Context, id uint, status models.AlertStatus) (*models.Alert, error) {
	return s.Update(ctx, id, models.AlertUpdate{Status: &status})
}
