package handler

import (
	"net/http"

	"hospital-inventory-dashboard/internal/middleware"
	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MedicineCategories are the catalog categories offered as filters
var MedicineCategories = []string{"ANTIBIOTIC", "ANALGESIC", "ANTIVIRAL", "CARDIOVASCULAR", "RESPIRATORY"}

type MedicineHandler struct {
	logger zerolog.Logger
}

func NewMedicineHandler(logger zerolog.Logger) *MedicineHandler {
	return &MedicineHandler{logger: logger}
}

// GetMedicines lists the catalog. ?category= and ?essential=true are
// answered by the backend's filtered endpoints.
func (h *MedicineHandler) GetMedicines(c *gin.Context) {
	scope := middleware.GetScope(c)
	ctx := c.Request.Context()

	var (
		medicines []models.Medicine
		err       error
	)
	switch {
	case c.Query("category") != "":
		medicines, err = scope.Services.Medicines.ByCategory(ctx, c.Query("category"))
	case c.Query("essential") == "true":
		medicines, err = scope.Services.Medicines.Essential(ctx)
	default:
		medicines, err = scope.Services.Medicines.List(ctx)
	}
	if err != nil {
		fail(c, scope, err, "Failed to fetch medicines")
		return
	}
	h.render(c, medicines, "")
}

func (h *MedicineHandler) render(c *gin.Context, medicines []models.Medicine, message string) {
	essential := 0
	for _, m := range medicines {
		if m.IsEssential {
			essential++
		}
	}
	data := gin.H{
		"page":       "medicines",
		"medicines":  medicines,
		"count":      len(medicines),
		"essential":  essential,
		"categories": MedicineCategories,
	}
	if message != "" {
		data["message"] = message
	}
	utils.SuccessResponse(c, data)
}

func (h *MedicineHandler) GetMedicine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	scope := middleware.GetScope(c)
	medicine, err := scope.Services.Medicines.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, scope, err, "Failed to fetch medicine")
		return
	}
	utils.SuccessResponse(c, medicine)
}

func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	var medicine models.Medicine
	if err := c.ShouldBindJSON(&medicine); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	scope := middleware.GetScope(c)
	if _, err := scope.Services.Medicines.Create(c.Request.Context(), medicine); err != nil {
		fail(c, scope, err, "Failed to create medicine")
		return
	}
	h.refetch(c, scope, "Medicine created successfully")
}

func (h *MedicineHandler) UpdateMedicine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var update models.MedicineUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	scope := middleware.GetScope(c)
	if _, err := scope.Services.Medicines.Update(c.Request.Context(), id, update); err != nil {
		fail(c, scope, err, "Failed to update medicine")
		return
	}
	h.refetch(c, scope, "Medicine updated successfully")
}

func (h *MedicineHandler) DeleteMedicine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	scope := middleware.GetScope(c)
	if err := scope.Services.Medicines.Delete(c.Request.Context(), id); err != nil {
		fail(c, scope, err, "Failed to delete medicine")
		return
	}
	h.refetch(c, scope, "Medicine deleted successfully")
}

func (h *MedicineHandler) refetch(c *gin.Context, scope *middleware.Scope, message string) {
	medicines, err := scope.Services.Medicines.List(c.Request.Context())
	if err != nil {
		fail(c, scope, err, "Failed to fetch medicines")
		return
	}
	h.render(c, medicines, message)
}
