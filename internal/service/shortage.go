package service

import (
	"hospital-inventory-dashboard/internal/models"
)

// ShortageWindowDays is the horizon of the "within 7 days" counter
const ShortageWindowDays = 7

// BuildBatch turns inventory rows into prediction snapshots. Rows with no
// recorded daily usage are sent with a consumption of 1.
func BuildBatch(items []models.InventoryItem) []models.PredictionRequest {
	batch := make([]models.PredictionRequest, 0, len(items))
	for _, item := range items {
		daily := item.AverageDailyUsage.Float64()
		if daily <= 0 {
			daily = 1
		}
		reorder := item.ReorderLevel
		batch = append(batch, models.PredictionRequest{
			MedicineID:       item.Medicine,
			HospitalID:       item.Hospital,
			CurrentStock:     item.CurrentStock,
			DailyConsumption: daily,
			ReorderLevel:     &reorder,
		})
	}
	return batch
}

// ShortageSummary is what the predictions page shows above the table
type ShortageSummary struct {
	Total        int                `json:"total"`
	RiskSummary  models.RiskSummary `json:"risk_summary"`
	HighRisk     int                `json:"high_risk"`
	WithinWindow int                `json:"within_7_days"`
}

// Summarize counts results per risk level client-side, so partial responses
// (the backend caps the returned list) are summarized consistently.
func Summarize(results []models.PredictionResult) ShortageSummary {
	var s ShortageSummary
	for _, r := range results {
		s.Total++
		switch r.RiskLevel {
		case models.SeverityLow:
			s.RiskSummary.Low++
		case models.SeverityMedium:
			s.RiskSummary.Medium++
		case models.SeverityHigh:
			s.RiskSummary.High++
		case models.SeverityCritical:
			s.RiskSummary.Critical++
		}
		if r.DaysOfSupply <= ShortageWindowDays {
			s.WithinWindow++
		}
	}
	s.HighRisk = s.RiskSummary.HighRisk()
	return s
}
