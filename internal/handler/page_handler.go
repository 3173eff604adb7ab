package handler

import (
	"context"
	"net/http"

	"hospital-inventory-dashboard/internal/middleware"
	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NavItem is one entry of the dashboard sidebar
type NavItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

var navigation = []NavItem{
	{Path: "/dashboard", Label: "Overview"},
	{Path: "/dashboard/hospitals", Label: "Hospitals"},
	{Path: "/dashboard/inventory", Label: "Inventory"},
	{Path: "/dashboard/alerts", Label: "Alerts"},
	{Path: "/dashboard/predictions", Label: "Predictions"},
	{Path: "/dashboard/medicines", Label: "Medicines"},
}

type PageHandler struct {
	logger zerolog.Logger
}

func NewPageHandler(logger zerolog.Logger) *PageHandler {
	return &PageHandler{logger: logger}
}

// Landing is the public product page
func (h *PageHandler) Landing(c *gin.Context) {
	scope := middleware.GetScope(c)
	utils.SuccessResponse(c, gin.H{
		"page":          "landing",
		"authenticated": scope.Auth.IsAuthenticated(),
		"sections":      []string{"hero", "features", "ai-features", "live-demo"},
		"api": []gin.H{
			{"method": "POST", "path": "/api/auth/login/", "description": "Obtain access and refresh tokens"},
			{"method": "GET", "path": "/api/hospitals/", "description": "List hospitals"},
			{"method": "GET", "path": "/api/hospitals/inventory/", "description": "List inventory across hospitals"},
			{"method": "GET", "path": "/api/medicines/", "description": "Medicine catalog"},
			{"method": "GET", "path": "/api/alerts/", "description": "Shortage alerts"},
			{"method": "POST", "path": "/api/predictions/batch-predict/", "description": "Shortage risk for many items"},
		},
	})
}

// Overview summarizes the network: hospitals, stock levels and open alerts
func (h *PageHandler) Overview(c *gin.Context) {
	scope := middleware.GetScope(c)
	svc := scope.Services

	var (
		hospitals []models.Hospital
		inventory []models.InventoryItem
		alerts    []models.Alert
	)
	errs := fetches{
		"hospitals": func(ctx context.Context) (err error) {
			hospitals, err = svc.Hospitals.List(ctx)
			return err
		},
		"inventory": func(ctx context.Context) (err error) {
			inventory, err = svc.Inventory.List(ctx)
			return err
		},
		"alerts": func(ctx context.Context) (err error) {
			alerts, err = svc.Alerts.List(ctx)
			return err
		},
	}.run(c.Request.Context())

	messages, ok := pageErrors(scope, errs)
	if !ok {
		return
	}

	stock := countStock(inventory)
	alertStats := countAlerts(alerts)
	utils.SuccessResponse(c, gin.H{
		"page":       "overview",
		"user":       scope.Auth.User(),
		"navigation": navigation,
		"stats": gin.H{
			"hospitals":       len(hospitals),
			"inventory_items": len(inventory),
			"low_stock":       stock.Low,
			"out_of_stock":    stock.Out,
			"active_alerts":   alertStats.Active,
			"critical_alerts": alertStats.Critical,
		},
		"errors": messages,
	})
}

// Activity lists this browser's recent session events
func (h *PageHandler) Activity(c *gin.Context) {
	scope := middleware.GetScope(c)
	events, err := scope.History(50)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load session history")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load activity")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"page":   "activity",
		"events": events,
		"count":  len(events),
	})
}

// NotFound answers every unknown route
func (h *PageHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   "Page not found",
		"path":    c.Request.URL.Path,
	})
}
