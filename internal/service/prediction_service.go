package service

import (
	"context"

	"hospital-inventory-dashboard/internal/apiclient"
	"hospital-inventory-dashboard/internal/models"
)

type PredictionService struct {
	client *apiclient.Client
}

func NewPredictionService(client *apiclient.Client) *PredictionService {
	return &PredictionService{client: client}
}

// List returns predictions the backend has stored
func (s *PredictionService) List(ctx context.Context) ([]models.StoredPrediction, error) {
	var predictions []models.StoredPrediction
	err := s.client.Get(ctx, "/api/predictions/", &predictions)
	return predictions, err
}

// Predict runs single-item risk inference
func (s *PredictionService) Predict(ctx context.Context, req models.PredictionRequest) (*models.PredictionResponse, error) {
	var resp models.PredictionResponse
	if err := s.client.Post(ctx, "/api/predictions/predict/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BatchPredict sends every snapshot in one request. It does not skip empty
// input; callers decide whether an empty batch is worth a round trip.
func (s *PredictionService) BatchPredict(ctx context.Context, inventories []models.PredictionRequest) (*models.BatchPredictResponse, error) {
	if inventories == nil {
		inventories = []models.PredictionRequest{}
	}
	var resp models.BatchPredictResponse
	if err := s.client.Post(ctx, "/api/predictions/batch-predict/", models.BatchPredictRequest{Inventories: inventories}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *PredictionService) ModelStatus(ctx context.Context) (*models.ModelStatus, error) {
	var status models.ModelStatus
	if err := s.client.Get(ctx, "/api/predictions/model-status/", &status); err != nil {
		return nil, err
	}
	return &status, nil
}
