package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hospital-inventory-dashboard/internal/apiclient"
	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/internal/session"
	"hospital-inventory-dashboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Services, *testutil.Backend, *session.MemoryStore) {
	t.Helper()
	backend := testutil.NewBackend(t)
	store := session.NewMemoryStore()
	return New(apiclient.New(backend.URL(), store)), backend, store
}

func signIn(t *testing.T, svc *Services) {
	t.Helper()
	_, err := svc.Auth.Login(context.Background(), testutil.Email, testutil.Password)
	require.NoError(t, err)
}

func TestAuthService_LoginStoresBothTokens(t *testing.T) {
	svc, _, store := setup(t)

	tokens, err := svc.Auth.Login(context.Background(), testutil.Email, testutil.Password)
	require.NoError(t, err)

	access, _ := store.AccessToken()
	refresh, _ := store.RefreshToken()
	assert.Equal(t, tokens.Access, access)
	assert.Equal(t, tokens.Refresh, refresh)
	assert.NotEmpty(t, access)
}

func TestAuthService_LoginFailureStoresNothing(t *testing.T) {
	svc, _, store := setup(t)

	_, err := svc.Auth.Login(context.Background(), testutil.Email, "wrong")
	require.Error(t, err)

	access, _ := store.AccessToken()
	assert.Empty(t, access)
}

func TestAuthService_RegisterSignsIn(t *testing.T) {
	svc, _, store := setup(t)

	resp, err := svc.Auth.Register(context.Background(), models.RegisterRequest{
		Username:        "new1234",
		Email:           "new@clinic.org",
		Password:        "longenough",
		PasswordConfirm: "longenough",
		Role:            models.RoleHospitalAdmin,
		HospitalName:    "Clinic",
		FirstName:       "Admin",
		LastName:        "User",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Tokens)

	access, _ := store.AccessToken()
	assert.Equal(t, resp.Tokens.Access, access)

	user, err := svc.Auth.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new@clinic.org", user.Email)
}

func TestAuthService_LogoutClearsAfterBackendCall(t *testing.T) {
	svc, backend, store := setup(t)
	signIn(t, svc)

	require.NoError(t, svc.Auth.Logout(context.Background()))

	assert.Equal(t, 1, backend.Calls(http.MethodPost, "/api/auth/logout/"))
	access, _ := store.AccessToken()
	refresh, _ := store.RefreshToken()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestHospitalService_CRUD(t *testing.T) {
	svc, _, _ := setup(t)
	signIn(t, svc)
	ctx := context.Background()

	created, err := svc.Hospitals.Create(ctx, models.Hospital{Name: "City General", City: "Pune", IsActive: true})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	name := "City General Hospital"
	updated, err := svc.Hospitals.Update(ctx, created.ID, models.HospitalUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "Pune", updated.City)

	got, err := svc.Hospitals.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)

	require.NoError(t, svc.Hospitals.Delete(ctx, created.ID))

	_, err = svc.Hospitals.Get(ctx, created.ID)
	code, ok := apiclient.StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHospitalService_ScopedInventory(t *testing.T) {
	svc, backend, _ := setup(t)
	signIn(t, svc)
	a := backend.AddHospital(models.Hospital{Name: "A"})
	b := backend.AddHospital(models.Hospital{Name: "B"})
	med := backend.AddMedicine(models.Medicine{Name: "Amoxicillin"})
	backend.AddInventory(models.InventoryItem{Hospital: a.ID, Medicine: med.ID, CurrentStock: 5, ReorderLevel: 10})
	backend.AddInventory(models.InventoryItem{Hospital: a.ID, Medicine: med.ID, CurrentStock: 50, ReorderLevel: 10})
	backend.AddInventory(models.InventoryItem{Hospital: b.ID, Medicine: med.ID, CurrentStock: 1, ReorderLevel: 10})

	items, err := svc.Hospitals.Inventory(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	low, err := svc.Hospitals.LowStock(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, 5, low[0].CurrentStock)
}

func TestInventoryService_ZeroStockUpdateReachesBackend(t *testing.T) {
	svc, backend, _ := setup(t)
	signIn(t, svc)
	item := backend.AddInventory(models.InventoryItem{Hospital: 1, Medicine: 2, CurrentStock: 40, ReorderLevel: 10})

	updated, err := svc.Inventory.Update(context.Background(), item.ID, models.InventoryUpdate{CurrentStock: models.IntPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.CurrentStock)
	assert.Equal(t, models.StockStatusOutOfStock, updated.Status())
	assert.Equal(t, 0, backend.Inventory(item.ID).CurrentStock)

	out, err := svc.Inventory.OutOfStock(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestInventoryService_ListCreateDelete(t *testing.T) {
	svc, _, _ := setup(t)
	signIn(t, svc)
	ctx := context.Background()

	created, err := svc.Inventory.Create(ctx, models.InventoryItem{Hospital: 1, Medicine: 1, CurrentStock: 3, ReorderLevel: 5})
	require.NoError(t, err)

	low, err := svc.Inventory.LowStock(ctx)
	require.NoError(t, err)
	assert.Len(t, low, 1)

	got, err := svc.Inventory.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentStock)

	require.NoError(t, svc.Inventory.Delete(ctx, created.ID))
	all, err := svc.Inventory.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMedicineService_Filters(t *testing.T) {
	svc, backend, _ := setup(t)
	signIn(t, svc)
	backend.AddMedicine(models.Medicine{Name: "Paracetamol", Category: "Analgesic", IsEssential: true})
	backend.AddMedicine(models.Medicine{Name: "Vitamin C", Category: "Supplement & Vitamin"})

	essential, err := svc.Medicines.Essential(context.Background())
	require.NoError(t, err)
	require.Len(t, essential, 1)
	assert.Equal(t, "Paracetamol", essential[0].Name)

	byCat, err := svc.Medicines.ByCategory(context.Background(), "Supplement & Vitamin")
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, "Vitamin C", byCat[0].Name)
}

func TestMedicineService_CRUD(t *testing.T) {
	svc, _, _ := setup(t)
	signIn(t, svc)
	ctx := context.Background()

	created, err := svc.Medicines.Create(ctx, models.Medicine{Name: "Insulin", Category: "Hormone"})
	require.NoError(t, err)

	essential := true
	updated, err := svc.Medicines.Update(ctx, created.ID, models.MedicineUpdate{IsEssential: &essential})
	require.NoError(t, err)
	assert.True(t, updated.IsEssential)

	got, err := svc.Medicines.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Insulin", got.Name)

	require.NoError(t, svc.Medicines.Delete(ctx, created.ID))
	list, err := svc.Medicines.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAlertService_AcknowledgeAndResolve(t *testing.T) {
	svc, backend, _ := setup(t)
	signIn(t, svc)
	alert := backend.AddAlert(models.Alert{Severity: models.SeverityHigh})
	ctx := context.Background()

	acked, err := svc.Alerts.Acknowledge(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusAcknowledged, acked.Status)

	// repeated acknowledge is sent again
	_, err = svc.Alerts.Acknowledge(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.Calls(http.MethodPatch, fmt.Sprintf("/api/alerts/%d/", alert.ID)))

	resolved, err := svc.Alerts.Resolve(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusResolved, resolved.Status)
	assert.Equal(t, models.AlertStatusResolved, backend.Alert(alert.ID).Status)

	list, err := svc.Alerts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPredictionService_BatchPredict(t *testing.T) {
	svc, backend, _ := setup(t)
	signIn(t, svc)

	items := []models.InventoryItem{
		{Hospital: 1, Medicine: 2, CurrentStock: 10, ReorderLevel: 5, AverageDailyUsage: 5},
		{Hospital: 1, Medicine: 3, CurrentStock: 100, ReorderLevel: 5},
	}
	resp, err := svc.Predictions.BatchPredict(context.Background(), BuildBatch(items))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalPredictions)
	assert.Equal(t, 1, resp.RiskSummary.Critical)
	assert.Equal(t, 1, resp.RiskSummary.Low)

	batches := backend.Batches()
	require.Len(t, batches, 1)
	assert.Equal(t, 1.0, batches[0][1].DailyConsumption)
}

func TestPredictionService_EmptyBatchIsSent(t *testing.T) {
	svc, backend, _ := setup(t)
	signIn(t, svc)

	_, err := svc.Predictions.BatchPredict(context.Background(), nil)
	code, ok := apiclient.StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 1, backend.Calls(http.MethodPost, "/api/predictions/batch-predict/"))
}

func TestPredictionService_StatusPredictAndList(t *testing.T) {
	svc, backend, _ := setup(t)
	signIn(t, svc)
	backend.AddPrediction(models.StoredPrediction{MedicineName: "Insulin", RiskLevel: models.SeverityHigh})
	ctx := context.Background()

	status, err := svc.Predictions.ModelStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.ModelLoaded)

	single, err := svc.Predictions.Predict(ctx, models.PredictionRequest{MedicineID: 1, HospitalID: 1, CurrentStock: 70, DailyConsumption: 10})
	require.NoError(t, err)
	assert.Equal(t, models.SeverityMedium, single.Prediction.RiskLevel)

	stored, err := svc.Predictions.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Insulin", stored[0].MedicineName)
}

func TestServices_UnauthenticatedPropagates(t *testing.T) {
	svc, backend, store := setup(t)
	signIn(t, svc)
	backend.RevokeTokens()

	_, err := svc.Hospitals.List(context.Background())
	assert.True(t, errors.Is(err, apiclient.ErrUnauthenticated))
	access, _ := store.AccessToken()
	assert.Empty(t, access)
}
