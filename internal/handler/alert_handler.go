package handler

import (
	"context"
	"net/http"
	"strings"

	"hospital-inventory-dashboard/internal/middleware"
	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type AlertHandler struct {
	logger zerolog.Logger
}

func NewAlertHandler(logger zerolog.Logger) *AlertHandler {
	return &AlertHandler{logger: logger}
}

type alertCounts struct {
	Active   int `json:"active"`
	Critical int `json:"critical"`
}

// countAlerts counts open alerts; critical only counts those still active
func countAlerts(alerts []models.Alert) alertCounts {
	var counts alertCounts
	for _, a := range alerts {
		if a.Status != models.AlertStatusActive {
			continue
		}
		counts.Active++
		if a.Severity == models.SeverityCritical {
			counts.Critical++
		}
	}
	return counts
}

// GetAlerts lists alerts. ?status=ACTIVE|ACKNOWLEDGED|RESOLVED filters the
// table; the counters always cover every alert.
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	scope := middleware.GetScope(c)
	alerts, err := scope.Services.Alerts.List(c.Request.Context())
	if err != nil {
		fail(c, scope, err, "Failed to fetch alerts")
		return
	}
	h.render(c, alerts, strings.ToUpper(c.DefaultQuery("status", "ALL")), "")
}

func (h *AlertHandler) render(c *gin.Context, alerts []models.Alert, filter, message string) {
	shown := alerts
	if filter != "ALL" {
		shown = make([]models.Alert, 0, len(alerts))
		for _, a := range alerts {
			if string(a.Status) == filter {
				shown = append(shown, a)
			}
		}
	}
	data := gin.H{
		"page":   "alerts",
		"filter": filter,
		"alerts": shown,
		"count":  len(shown),
		"stats":  countAlerts(alerts),
	}
	if message != "" {
		data["message"] = message
	}
	utils.SuccessResponse(c, data)
}

func (h *AlertHandler) GetAlert(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	scope := middleware.GetScope(c)
	alert, err := scope.Services.Alerts.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, scope, err, "Failed to fetch alert")
		return
	}
	utils.SuccessResponse(c, alert)
}

// Acknowledge marks an alert acknowledged. The backend decides whether the
// transition is allowed.
func (h *AlertHandler) Acknowledge(c *gin.Context) {
	h.transition(c, "Alert acknowledged", "Failed to acknowledge alert",
		func(ctx context.Context, scope *middleware.Scope, id uint) error {
			_, err := scope.Services.Alerts.Acknowledge(ctx, id)
			return err
		})
}

func (h *AlertHandler) Resolve(c *gin.Context) {
	h.transition(c, "Alert resolved successfully", "Failed to resolve alert",
		func(ctx context.Context, scope *middleware.Scope, id uint) error {
			_, err := scope.Services.Alerts.Resolve(ctx, id)
			return err
		})
}

func (h *AlertHandler) UpdateAlert(c *gin.Context) {
	var update models.AlertUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	h.transition(c, "Alert updated", "Failed to update alert",
		func(ctx context.Context, scope *middleware.Scope, id uint) error {
			_, err := scope.Services.Alerts.Update(ctx, id, update)
			return err
		})
}

func (h *AlertHandler) transition(c *gin.Context, success, failure string, apply func(context.Context, *middleware.Scope, uint) error) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	scope := middleware.GetScope(c)
	if err := apply(c.Request.Context(), scope, id); err != nil {
		fail(c, scope, err, failure)
		return
	}
	alerts, err := scope.Services.Alerts.List(c.Request.Context())
	if err != nil {
		fail(c, scope, err, "Failed to fetch alerts")
		return
	}
	h.render(c, alerts, "ALL", success)
}
