package handler

import (
	"net/http"

	"hospital-inventory-dashboard/internal/middleware"
	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HospitalHandler struct {
	logger zerolog.Logger
}

func NewHospitalHandler(logger zerolog.Logger) *HospitalHandler {
	return &HospitalHandler{logger: logger}
}

func hospitalStats(hospitals []models.Hospital) gin.H {
	active, beds := 0, 0
	for _, h := range hospitals {
		if h.IsActive {
			active++
		}
		beds += h.BedCapacity
	}
	return gin.H{"total": len(hospitals), "active": active, "total_beds": beds}
}

// GetAllHospitals retrieves all hospitals visible to the signed-in user
func (h *HospitalHandler) GetAllHospitals(c *gin.Context) {
	scope := middleware.GetScope(c)
	hospitals, err := scope.Services.Hospitals.List(c.Request.Context())
	if err != nil {
		fail(c, scope, err, "Failed to fetch hospitals")
		return
	}
	h.render(c, hospitals, "")
}

func (h *HospitalHandler) render(c *gin.Context, hospitals []models.Hospital, message string) {
	data := gin.H{
		"page":      "hospitals",
		"hospitals": hospitals,
		"count":     len(hospitals),
		"stats":     hospitalStats(hospitals),
	}
	if message != "" {
		data["message"] = message
	}
	utils.SuccessResponse(c, data)
}

// GetHospital retrieves a specific hospital by ID
func (h *HospitalHandler) GetHospital(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	scope := middleware.GetScope(c)
	hospital, err := scope.Services.Hospitals.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, scope, err, "Failed to fetch hospital")
		return
	}
	utils.SuccessResponse(c, hospital)
}

// GetHospitalInventory lists one hospital's stock. ?low_stock=true limits
// it to rows the backend flags as low.
func (h *HospitalHandler) GetHospitalInventory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	scope := middleware.GetScope(c)
	list := scope.Services.Hospitals.Inventory
	if c.Query("low_stock") == "true" {
		list = scope.Services.Hospitals.LowStock
	}
	items, err := list(c.Request.Context(), id)
	if err != nil {
		fail(c, scope, err, "Failed to fetch hospital inventory")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"hospital_id": id,
		"inventory":   inventoryRows(items),
		"count":       len(items),
		"summary":     countStock(items),
	})
}

// CreateHospital creates a new hospital and returns the refreshed list
func (h *HospitalHandler) CreateHospital(c *gin.Context) {
	var hospital models.Hospital
	if err := c.ShouldBindJSON(&hospital); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	scope := middleware.GetScope(c)
	if _, err := scope.Services.Hospitals.Create(c.Request.Context(), hospital); err != nil {
		fail(c, scope, err, "Failed to create hospital")
		return
	}
	h.refetch(c, scope, "Hospital created successfully")
}

// UpdateHospital patches an existing hospital
func (h *HospitalHandler) UpdateHospital(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var update models.HospitalUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	scope := middleware.GetScope(c)
	if _, err := scope.Services.Hospitals.Update(c.Request.Context(), id, update); err != nil {
		fail(c, scope, err, "Failed to update hospital")
		return
	}
	h.refetch(c, scope, "Hospital updated successfully")
}

// DeleteHospital deletes a hospital
func (h *HospitalHandler) DeleteHospital(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	scope := middleware.GetScope(c)
	if err := scope.Services.Hospitals.Delete(c.Request.Context(), id); err != nil {
		fail(c, scope, err, "Failed to delete hospital")
		return
	}
	h.refetch(c, scope, "Hospital deleted successfully")
}

func (h *HospitalHandler) refetch(c *gin.Context, scope *middleware.Scope, message string) {
	hospitals, err := scope.Services.Hospitals.List(c.Request.Context())
	if err != nil {
		fail(c, scope, err, "Failed to fetch hospitals")
		return
	}
	h.render(c, hospitals, message)
}
