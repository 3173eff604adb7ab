// Package testutil provides an in-memory stand-in for the REST backend.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"hospital-inventory-dashboard/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default credentials accepted by the fake backend
const (
	Email    = "admin@hospital.com"
	Password = "Secret123!"
)

var signingKey = []byte("testutil-signing-key")

// Backend serves the subset of the REST API the dashboard uses, backed by
// maps. Every request is recorded so tests can assert on what was called.
type Backend struct {
	Server *httptest.Server

	mu          sync.Mutex
	users       map[string]account
	validTokens map[string]uint
	hospitals   map[uint]models.Hospital
	medicines   map[uint]models.Medicine
	inventory   map[uint]models.InventoryItem
	alerts      map[uint]models.Alert
	predictions []models.StoredPrediction
	failures    map[string]int
	calls       []string
	batches     [][]models.PredictionRequest
	nextID      uint
}

type account struct {
	password string
	user     models.User
}

// NewBackend starts the fake server and registers its shutdown with t.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{
		users:       map[string]account{},
		validTokens: map[string]uint{},
		hospitals:   map[uint]models.Hospital{},
		medicines:   map[uint]models.Medicine{},
		inventory:   map[uint]models.InventoryItem{},
		alerts:      map[uint]models.Alert{},
		failures:    map[string]int{},
		nextID:      1,
	}
	b.users[Email] = account{
		password: Password,
		user:     models.User{ID: b.id(), Email: Email, Name: "Admin User", Role: models.RoleHospitalAdmin},
	}

	b.Server = httptest.NewServer(b.router())
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) URL() string { return b.Server.URL }

// Fail makes every "METHOD /path" request answer with status until cleared
// with a zero status.
func (b *Backend) Fail(method, path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := method + " " + path
	if status == 0 {
		delete(b.failures, key)
		return
	}
	b.failures[key] = status
}

// RevokeTokens invalidates every issued token, so the next authenticated
// call answers 401.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	b.validTokens = map[string]uint{}
	b.mu.Unlock()
}

// Calls counts recorded requests matching "METHOD /path"
func (b *Backend) Calls(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == method+" "+path {
			n++
		}
	}
	return n
}

// TotalCalls is the number of requests the backend has seen
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

// Batches returns the bodies of every batch-predict request received
func (b *Backend) Batches() [][]models.PredictionRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]models.PredictionRequest(nil), b.batches...)
}

// IssueToken returns a valid access token for the default account
func (b *Backend) IssueToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issue(b.users[Email].user.ID, "access", time.Hour)
}

func (b *Backend) AddHospital(h models.Hospital) models.Hospital {
	b.mu.Lock()
	defer b.mu.Unlock()
	h.ID = b.id()
	b.hospitals[h.ID] = h
	return h
}

func (b *Backend) AddMedicine(m models.Medicine) models.Medicine {
	b.mu.Lock()
	defer b.mu.Unlock()
	m.ID = b.id()
	b.medicines[m.ID] = m
	return m
}

func (b *Backend) AddInventory(item models.InventoryItem) models.InventoryItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	item.ID = b.id()
	b.inventory[item.ID] = b.decorate(item)
	return b.inventory[item.ID]
}

func (b *Backend) AddAlert(a models.Alert) models.Alert {
	b.mu.Lock()
	defer b.mu.Unlock()
	a.ID = b.id()
	if a.Status == "" {
		a.Status = models.AlertStatusActive
	}
	b.alerts[a.ID] = a
	return a
}

func (b *Backend) AddPrediction(p models.StoredPrediction) models.StoredPrediction {
	b.mu.Lock()
	defer b.mu.Unlock()
	p.ID = b.id()
	b.predictions = append(b.predictions, p)
	return p
}

func (b *Backend) Alert(id uint) models.Alert {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.alerts[id]
}

func (b *Backend) Inventory(id uint) models.InventoryItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inventory[id]
}

func (b *Backend) id() uint {
	id := b.nextID
	b.nextID++
	return id
}

func (b *Backend) issue(userID uint, tokenType string, ttl time.Duration) string {
	uid := userID
	claims := jwt.MapClaims{
		"user_id":    uid,
		"token_type": tokenType,
		"jti":        uuid.NewString(),
		"exp":        time.Now().Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	if tokenType == "access" {
		b.validTokens[signed] = userID
	}
	return signed
}

func (b *Backend) decorate(item models.InventoryItem) models.InventoryItem {
	if h, ok := b.hospitals[item.Hospital]; ok {
		item.HospitalName = h.Name
	}
	if m, ok := b.medicines[item.Medicine]; ok {
		item.MedicineName = m.Name
	}
	switch models.ClassifyStock(item.CurrentStock, item.ReorderLevel) {
	case models.StockStatusOutOfStock:
		item.StockStatus = "OUT_OF_STOCK"
	case models.StockStatusLowStock:
		item.StockStatus = "LOW"
	default:
		item.StockStatus = "ADEQUATE"
	}
	return item
}

func (b *Backend) router() *gin.Engine {
	r := gin.New()
	r.Use(b.record())

	api := r.Group("/api")
	api.POST("/auth/login/", b.login)
	api.POST("/auth/register/", b.register)

	authed := api.Group("", b.authenticate())
	authed.POST("/auth/logout/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	authed.GET("/auth/profile/", b.profile)

	authed.GET("/hospitals/", b.listHospitals)
	authed.POST("/hospitals/", b.createHospital)
	authed.GET("/hospitals/:id/", b.getHospital)
	authed.PATCH("/hospitals/:id/", b.patchHospital)
	authed.DELETE("/hospitals/:id/", b.deleteHospital)
	authed.GET("/hospitals/:id/inventory/", b.hospitalInventory(false))
	authed.GET("/hospitals/:id/low_stock/", b.hospitalInventory(true))

	authed.GET("/hospitals/inventory/", b.listInventory(nil))
	authed.POST("/hospitals/inventory/", b.createInventory)
	authed.GET("/hospitals/inventory/low_stock/", b.listInventory(func(i models.InventoryItem) bool {
		return i.CurrentStock <= i.ReorderLevel
	}))
	authed.GET("/hospitals/inventory/out_of_stock/", b.listInventory(func(i models.InventoryItem) bool {
		return i.CurrentStock == 0
	}))
	authed.GET("/hospitals/inventory/:id/", b.getInventory)
	authed.PATCH("/hospitals/inventory/:id/", b.patchInventory)
	authed.DELETE("/hospitals/inventory/:id/", b.deleteInventory)

	authed.GET("/medicines/", b.listMedicines(nil))
	authed.POST("/medicines/", b.createMedicine)
	authed.GET("/medicines/essential/", b.listMedicines(func(c *gin.Context, m models.Medicine) bool {
		return m.IsEssential
	}))
	authed.GET("/medicines/by_category/", b.listMedicines(func(c *gin.Context, m models.Medicine) bool {
		return m.Category == c.Query("category")
	}))
	authed.GET("/medicines/:id/", b.getMedicine)
	authed.PATCH("/medicines/:id/", b.patchMedicine)
	authed.DELETE("/medicines/:id/", b.deleteMedicine)

	authed.GET("/alerts/", b.listAlerts)
	authed.GET("/alerts/:id/", b.getAlert)
	authed.PATCH("/alerts/:id/", b.patchAlert)

	authed.GET("/predictions/", b.listPredictions)
	authed.POST("/predictions/predict/", b.predict)
	authed.POST("/predictions/batch-predict/", b.batchPredict)
	authed.GET("/predictions/model-status/", b.modelStatus)
	return r
}

func (b *Backend) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + " " + c.Request.URL.Path
		b.mu.Lock()
		b.calls = append(b.calls, key)
		status, fail := b.failures[key]
		b.mu.Unlock()
		if fail {
			c.AbortWithStatusJSON(status, gin.H{"error": "injected failure"})
			return
		}
		c.Next()
	}
}

func (b *Backend) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		b.mu.Lock()
		userID, ok := b.validTokens[token]
		b.mu.Unlock()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Given token not valid for any token type"})
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}

func (b *Backend) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acct, ok := b.users[req.Email]
	if !ok || acct.password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
		return
	}
	c.JSON(http.StatusOK, models.Tokens{
		Access:  b.issue(acct.user.ID, "access", time.Hour),
		Refresh: b.issue(acct.user.ID, "refresh", 24*time.Hour),
	})
}

func (b *Backend) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password != req.PasswordConfirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[req.Email]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"email": []string{"already registered"}})
		return
	}
	user := models.User{
		ID:    b.id(),
		Email: req.Email,
		Name:  strings.TrimSpace(req.FirstName + " " + req.LastName),
		Role:  req.Role,
	}
	b.users[req.Email] = account{password: req.Password, user: user}
	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{"id": user.ID, "email": user.Email, "username": req.Username, "role": user.Role},
		"tokens": models.Tokens{
			Access:  b.issue(user.ID, "access", time.Hour),
			Refresh: b.issue(user.ID, "refresh", 24*time.Hour),
		},
	})
}

func (b *Backend) profile(c *gin.Context) {
	userID := c.GetUint("userID")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, acct := range b.users {
		if acct.user.ID == userID {
			c.JSON(http.StatusOK, acct.user)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return 0, false
	}
	return uint(id), true
}

func sortedValues[T any](m map[uint]T) []T {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func (b *Backend) listHospitals(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, sortedValues(b.hospitals))
}

func (b *Backend) createHospital(c *gin.Context) {
	var h models.Hospital
	if err := c.ShouldBindJSON(&h); err != nil || h.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"name": []string{"This field is required."}})
		return
	}
	c.JSON(http.StatusCreated, b.AddHospital(h))
}

func (b *Backend) getHospital(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	h, found := b.hospitals[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, h)
}

func (b *Backend) patchHospital(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var u models.HospitalUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	h, found := b.hospitals[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if u.Name != nil {
		h.Name = *u.Name
	}
	if u.City != nil {
		h.City = *u.City
	}
	if u.State != nil {
		h.State = *u.State
	}
	if u.BedCapacity != nil {
		h.BedCapacity = *u.BedCapacity
	}
	if u.IsActive != nil {
		h.IsActive = *u.IsActive
	}
	b.hospitals[id] = h
	c.JSON(http.StatusOK, h)
}

func (b *Backend) deleteHospital(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.hospitals[id]; !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	delete(b.hospitals, id)
	c.Status(http.StatusNoContent)
}

func (b *Backend) hospitalInventory(lowOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		items := []models.InventoryItem{}
		for _, item := range sortedValues(b.inventory) {
			if item.Hospital != id || (lowOnly && item.CurrentStock > item.ReorderLevel) {
				continue
			}
			items = append(items, item)
		}
		c.JSON(http.StatusOK, items)
	}
}

func (b *Backend) listInventory(keep func(models.InventoryItem) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		items := []models.InventoryItem{}
		for _, item := range sortedValues(b.inventory) {
			if keep == nil || keep(item) {
				items = append(items, item)
			}
		}
		c.JSON(http.StatusOK, items)
	}
}

func (b *Backend) createInventory(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil || item.Hospital == 0 || item.Medicine == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hospital and medicine are required"})
		return
	}
	c.JSON(http.StatusCreated, b.AddInventory(item))
}

func (b *Backend) getInventory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	item, found := b.inventory[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (b *Backend) patchInventory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var u models.InventoryUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	item, found := b.inventory[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if u.CurrentStock != nil {
		item.CurrentStock = *u.CurrentStock
	}
	if u.ReorderLevel != nil {
		item.ReorderLevel = *u.ReorderLevel
	}
	if u.MaxCapacity != nil {
		item.MaxCapacity = *u.MaxCapacity
	}
	if u.AverageDailyUsage != nil {
		item.AverageDailyUsage = *u.AverageDailyUsage
	}
	b.inventory[id] = b.decorate(item)
	c.JSON(http.StatusOK, b.inventory[id])
}

func (b *Backend) deleteInventory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.inventory[id]; !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	delete(b.inventory, id)
	c.Status(http.StatusNoContent)
}

func (b *Backend) listMedicines(keep func(*gin.Context, models.Medicine) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		b.mu.Lock()
		defer b.mu.Unlock()
		meds := []models.Medicine{}
		for _, m := range sortedValues(b.medicines) {
			if keep == nil || keep(c, m) {
				meds = append(meds, m)
			}
		}
		c.JSON(http.StatusOK, meds)
	}
}

func (b *Backend) createMedicine(c *gin.Context) {
	var m models.Medicine
	if err := c.ShouldBindJSON(&m); err != nil || m.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"name": []string{"This field is required."}})
		return
	}
	c.JSON(http.StatusCreated, b.AddMedicine(m))
}

func (b *Backend) getMedicine(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	m, found := b.medicines[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (b *Backend) patchMedicine(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var u models.MedicineUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	m, found := b.medicines[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Category != nil {
		m.Category = *u.Category
	}
	if u.IsEssential != nil {
		m.IsEssential = *u.IsEssential
	}
	if u.IsActive != nil {
		m.IsActive = *u.IsActive
	}
	b.medicines[id] = m
	c.JSON(http.StatusOK, m)
}

func (b *Backend) deleteMedicine(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, found := b.medicines[id]; !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	delete(b.medicines, id)
	c.Status(http.StatusNoContent)
}

func (b *Backend) listAlerts(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, sortedValues(b.alerts))
}

func (b *Backend) getAlert(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a, found := b.alerts[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (b *Backend) patchAlert(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var u models.AlertUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a, found := b.alerts[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.Severity != nil {
		a.Severity = *u.Severity
	}
	if u.Message != nil {
		a.Message = *u.Message
	}
	b.alerts[id] = a
	c.JSON(http.StatusOK, a)
}

func (b *Backend) listPredictions(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, append([]models.StoredPrediction{}, b.predictions...))
}

// score is a deterministic stand-in for the model: days of supply decide
// the risk level.
func score(req models.PredictionRequest) models.PredictionResult {
	daily := req.DailyConsumption
	if daily <= 0 {
		daily = 1
	}
	days := float64(req.CurrentStock) / daily
	res := models.PredictionResult{DaysOfSupply: days, Confidence: 0.9}
	switch {
	case days < 3:
		res.RiskLevel, res.ShortageProbability = models.SeverityCritical, 0.95
	case days < 7:
		res.RiskLevel, res.ShortageProbability = models.SeverityHigh, 0.7
	case days < 14:
		res.RiskLevel, res.ShortageProbability = models.SeverityMedium, 0.4
	default:
		res.RiskLevel, res.ShortageProbability = models.SeverityLow, 0.1
	}
	res.ShortagePrediction = res.ShortageProbability >= 0.5
	res.Recommendation = fmt.Sprintf("%.1f days of supply left", days)
	medicineID, hospitalID := req.MedicineID, req.HospitalID
	res.MedicineID, res.HospitalID = &medicineID, &hospitalID
	return res
}

func (b *Backend) predict(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.PredictionResponse{
		Success:    true,
		Prediction: score(req),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

func (b *Backend) batchPredict(c *gin.Context) {
	var req models.BatchPredictRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Inventories) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "inventories list is required"})
		return
	}
	b.mu.Lock()
	b.batches = append(b.batches, req.Inventories)
	b.mu.Unlock()

	resp := models.BatchPredictResponse{Success: true, TotalPredictions: len(req.Inventories)}
	for _, inv := range req.Inventories {
		res := score(inv)
		switch res.RiskLevel {
		case models.SeverityLow:
			resp.RiskSummary.Low++
		case models.SeverityMedium:
			resp.RiskSummary.Medium++
		case models.SeverityHigh:
			resp.RiskSummary.High++
		case models.SeverityCritical:
			resp.RiskSummary.Critical++
		}
		resp.Predictions = append(resp.Predictions, res)
	}
	c.JSON(http.StatusOK, resp)
}

func (b *Backend) modelStatus(c *gin.Context) {
	c.JSON(http.StatusOK, models.ModelStatus{ModelLoaded: true, ModelsExist: true, FeatureCount: 12, Status: "ready"})
}
