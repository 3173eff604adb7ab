package handler

import (
	"hospital-inventory-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouteDeps are the middlewares the dashboard routes are mounted behind
type RouteDeps struct {
	Session    gin.HandlerFunc
	LoginLimit gin.HandlerFunc
	Logger     zerolog.Logger
}

// RegisterRoutes mounts every dashboard page on r
func RegisterRoutes(r *gin.Engine, deps RouteDeps) {
	pages := NewPageHandler(deps.Logger)
	authHandler := NewAuthHandler(deps.Logger)
	hospitalHandler := NewHospitalHandler(deps.Logger)
	inventoryHandler := NewInventoryHandler(deps.Logger)
	medicineHandler := NewMedicineHandler(deps.Logger)
	alertHandler := NewAlertHandler(deps.Logger)
	predictionHandler := NewPredictionHandler(deps.Logger)

	loginLimit := deps.LoginLimit
	if loginLimit == nil {
		loginLimit = func(c *gin.Context) { c.Next() }
	}

	// Public pages
	public := r.Group("/", deps.Session)
	{
		public.GET("/", pages.Landing)
		public.GET("/login", authHandler.LoginPage)
		public.POST("/login", loginLimit, authHandler.Login)
		public.POST("/register", loginLimit, authHandler.Register)
		public.POST("/logout", authHandler.Logout)
	}

	// Dashboard pages (signed-in users only)
	dashboard := r.Group("/dashboard", deps.Session, middleware.RequireAuth())
	{
		dashboard.GET("", pages.Overview)
		dashboard.GET("/activity", pages.Activity)

		dashboard.GET("/hospitals", hospitalHandler.GetAllHospitals)
		dashboard.POST("/hospitals", hospitalHandler.CreateHospital)
		dashboard.GET("/hospitals/:id", hospitalHandler.GetHospital)
		dashboard.PATCH("/hospitals/:id", hospitalHandler.UpdateHospital)
		dashboard.DELETE("/hospitals/:id", hospitalHandler.DeleteHospital)
		dashboard.GET("/hospitals/:id/inventory", hospitalHandler.GetHospitalInventory)

		dashboard.GET("/inventory", inventoryHandler.GetInventory)
		dashboard.POST("/inventory", inventoryHandler.CreateItem)
		dashboard.GET("/inventory/:id", inventoryHandler.GetItem)
		dashboard.PATCH("/inventory/:id", inventoryHandler.UpdateItem)
		dashboard.DELETE("/inventory/:id", inventoryHandler.DeleteItem)

		dashboard.GET("/medicines", medicineHandler.GetMedicines)
		dashboard.POST("/medicines", medicineHandler.CreateMedicine)
		dashboard.GET("/medicines/:id", medicineHandler.GetMedicine)
		dashboard.PATCH("/medicines/:id", medicineHandler.UpdateMedicine)
		dashboard.DELETE("/medicines/:id", medicineHandler.DeleteMedicine)

		dashboard.GET("/alerts", alertHandler.GetAlerts)
		dashboard.GET("/alerts/:id", alertHandler.GetAlert)
		dashboard.PATCH("/alerts/:id", alertHandler.UpdateAlert)
		dashboard.POST("/alerts/:id/acknowledge", alertHandler.Acknowledge)
		dashboard.POST("/alerts/:id/resolve", alertHandler.Resolve)

		dashboard.GET("/predictions", predictionHandler.GetPredictions)
		dashboard.POST("/predictions/run", predictionHandler.RunBatch)
		dashboard.POST("/predictions/predict", predictionHandler.Predict)
	}

	r.NoRoute(pages.NotFound)
}
