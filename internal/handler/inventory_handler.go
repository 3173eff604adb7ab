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

type InventoryHandler struct {
	logger zerolog.Logger
}

func NewInventoryHandler(logger zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{logger: logger}
}

// InventoryRow is an inventory item with its display status
type InventoryRow struct {
	models.InventoryItem
	Status      models.StockStatus `json:"status"`
	StatusLabel string             `json:"status_label"`
}

type stockCounts struct {
	Low int `json:"low_stock"`
	Out int `json:"out_of_stock"`
}

func countStock(items []models.InventoryItem) stockCounts {
	var counts stockCounts
	for _, item := range items {
		switch item.Status() {
		case models.StockStatusOutOfStock:
			counts.Out++
		case models.StockStatusLowStock:
			counts.Low++
		}
	}
	return counts
}

func inventoryRows(items []models.InventoryItem) []InventoryRow {
	rows := make([]InventoryRow, 0, len(items))
	for _, item := range items {
		status := item.Status()
		rows = append(rows, InventoryRow{InventoryItem: item, Status: status, StatusLabel: status.Label()})
	}
	return rows
}

// GetInventory loads the inventory table with the hospital and medicine
// pickers. ?view=low_stock or ?view=out_of_stock asks the backend for a
// filtered list instead.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	scope := middleware.GetScope(c)
	svc := scope.Services

	listInventory := svc.Inventory.List
	switch view := c.Query("view"); view {
	case "", "all":
	case string(models.StockStatusLowStock):
		listInventory = svc.Inventory.LowStock
	case string(models.StockStatusOutOfStock):
		listInventory = svc.Inventory.OutOfStock
	default:
		utils.ErrorResponse(c, http.StatusBadRequest, "Unknown view "+view)
		return
	}

	var (
		inventory []models.InventoryItem
		hospitals []models.Hospital
		medicines []models.Medicine
	)
	errs := fetches{
		"inventory": func(ctx context.Context) (err error) {
			inventory, err = listInventory(ctx)
			return err
		},
		"hospitals": func(ctx context.Context) (err error) {
			hospitals, err = svc.Hospitals.List(ctx)
			return err
		},
		"medicines": func(ctx context.Context) (err error) {
			medicines, err = svc.Medicines.List(ctx)
			return err
		},
	}.run(c.Request.Context())

	messages, ok := pageErrors(scope, errs)
	if !ok {
		return
	}
	h.render(c, inventory, gin.H{
		"hospitals": hospitals,
		"medicines": medicines,
		"errors":    messages,
	})
}

func (h *InventoryHandler) render(c *gin.Context, inventory []models.InventoryItem, extra gin.H) {
	data := gin.H{
		"page":      "inventory",
		"inventory": inventoryRows(inventory),
		"count":     len(inventory),
		"summary":   countStock(inventory),
	}
	for k, v := range extra {
		data[k] = v
	}
	utils.SuccessResponse(c, data)
}

// GetItem returns one inventory row
func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	scope := middleware.GetScope(c)
	item, err := scope.Services.Inventory.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, scope, err, "Failed to fetch inventory item")
		return
	}
	utils.SuccessResponse(c, inventoryRows([]models.InventoryItem{*item})[0])
}

// CreateItem adds an inventory row and returns the refreshed table
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	scope := middleware.GetScope(c)
	if _, err := scope.Services.Inventory.Create(c.Request.Context(), item); err != nil {
		fail(c, scope, err, "Failed to save inventory")
		return
	}
	h.refetch(c, scope, "Inventory item created successfully")
}

// UpdateItem patches an inventory row. A current_stock of 0 is sent as-is.
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var update models.InventoryUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	scope := middleware.GetScope(c)
	if _, err := scope.Services.Inventory.Update(c.Request.Context(), id, update); err != nil {
		fail(c, scope, err, "Failed to save inventory")
		return
	}
	h.refetch(c, scope, "Inventory updated successfully")
}

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	scope := middleware.GetScope(c)
	if err := scope.Services.Inventory.Delete(c.Request.Context(), id); err != nil {
		fail(c, scope, err, "Failed to delete inventory")
		return
	}
	h.refetch(c, scope, "Inventory item deleted successfully")
}

func (h *InventoryHandler) refetch(c *gin.Context, scope *middleware.Scope, message string) {
	inventory, err := scope.Services.Inventory.List(c.Request.Context())
	if err != nil {
		fail(c, scope, err, "Failed to fetch inventory")
		return
	}
	h.render(c, inventory, gin.H{"message": message})
}
