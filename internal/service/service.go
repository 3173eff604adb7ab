// Package service is the typed facade over the REST backend: one method per
// backend operation, no validation, errors passed through unchanged.
package service

import (
	"hospital-inventory-dashboard/internal/apiclient"
)

// Services bundles the per-resource facades built on one request client
type Services struct {
	Auth        *AuthService
	Hospitals   *HospitalService
	Inventory   *InventoryService
	Medicines   *MedicineService
	Alerts      *AlertService
	Predictions *PredictionService
}

func New(client *apiclient.Client) *Services {
	return &Services{
		Auth:        NewAuthService(client),
		Hospitals:   NewHospitalService(client),
		Inventory:   NewInventoryService(client),
		Medicines:   NewMedicineService(client),
		Alerts:      NewAlertService(client),
		Predictions: NewPredictionService(client),
	}
}
