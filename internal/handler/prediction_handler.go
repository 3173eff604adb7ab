package handler

import (
	"context"
	"net/http"

	"hospital-inventory-dashboard/internal/middleware"
	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/internal/service"
	"hospital-inventory-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type PredictionHandler struct {
	logger zerolog.Logger
}

func NewPredictionHandler(logger zerolog.Logger) *PredictionHandler {
	return &PredictionHandler{logger: logger}
}

// GetPredictions loads stored predictions and the model status together
func (h *PredictionHandler) GetPredictions(c *gin.Context) {
	scope := middleware.GetScope(c)
	svc := scope.Services

	var (
		predictions []models.StoredPrediction
		status      *models.ModelStatus
	)
	errs := fetches{
		"predictions": func(ctx context.Context) (err error) {
			predictions, err = svc.Predictions.List(ctx)
			return err
		},
		"model_status": func(ctx context.Context) (err error) {
			status, err = svc.Predictions.ModelStatus(ctx)
			return err
		},
	}.run(c.Request.Context())

	messages, ok := pageErrors(scope, errs)
	if !ok {
		return
	}

	highRisk := 0
	for _, p := range predictions {
		if p.RiskLevel == models.SeverityHigh || p.RiskLevel == models.SeverityCritical {
			highRisk++
		}
	}
	utils.SuccessResponse(c, gin.H{
		"page":         "predictions",
		"predictions":  predictions,
		"count":        len(predictions),
		"high_risk":    highRisk,
		"model_status": status,
		"errors":       messages,
	})
}

// RunBatch predicts shortage risk for every inventory row. With no
// inventory there is nothing to send and the backend is not called.
func (h *PredictionHandler) RunBatch(c *gin.Context) {
	scope := middleware.GetScope(c)
	ctx := c.Request.Context()

	inventory, err := scope.Services.Inventory.List(ctx)
	if err != nil {
		fail(c, scope, err, "Failed to fetch inventory")
		return
	}
	if len(inventory) == 0 {
		utils.SuccessResponse(c, gin.H{
			"message":     "No inventory to analyze",
			"predictions": []models.PredictionResult{},
			"summary":     service.Summarize(nil),
		})
		return
	}

	resp, err := scope.Services.Predictions.BatchPredict(ctx, service.BuildBatch(inventory))
	if err != nil {
		fail(c, scope, err, "Failed to run predictions")
		return
	}
	h.logger.Info().Int("items", len(inventory)).Int("predictions", resp.TotalPredictions).Msg("batch prediction completed")

	utils.SuccessResponse(c, gin.H{
		"message":           "Predictions generated",
		"total_predictions": resp.TotalPredictions,
		"risk_summary":      resp.RiskSummary,
		"predictions":       resp.Predictions,
		"summary":           service.Summarize(resp.Predictions),
	})
}

// Predict scores a single snapshot posted by the form
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	scope := middleware.GetScope(c)
	resp, err := scope.Services.Predictions.Predict(c.Request.Context(), req)
	if err != nil {
		fail(c, scope, err, "Failed to run prediction")
		return
	}
	utils.SuccessResponse(c, resp)
}
