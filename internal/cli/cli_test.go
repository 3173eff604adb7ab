package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliHarness struct {
	t       *testing.T
	backend *testutil.Backend
	dbPath  string
}

func newCLI(t *testing.T) *cliHarness {
	t.Helper()
	return &cliHarness{
		t:       t,
		backend: testutil.NewBackend(t),
		dbPath:  filepath.Join(t.TempDir(), "session.db"),
	}
}

func (h *cliHarness) run(args ...string) (string, string, error) {
	h.t.Helper()
	return h.runAs("ops", args...)
}

func (h *cliHarness) runAs(profile string, args ...string) (string, string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	err := Run(append([]string{
		"--api-url", h.backend.URL(),
		"--session-db", h.dbPath,
		"--profile", profile,
	}, args...), &out, &errOut)
	return out.String(), errOut.String(), err
}

func (h *cliHarness) login() {
	h.t.Helper()
	out, _, err := h.run("login", "--email", testutil.Email, "--password", testutil.Password)
	require.NoError(h.t, err)
	require.Contains(h.t, out, "Logged in as "+testutil.Email)
}

func (h *cliHarness) activity() []string {
	h.t.Helper()
	out, _, err := h.run("activity")
	require.NoError(h.t, err)
	var events []models.AuditLog
	require.NoError(h.t, json.Unmarshal([]byte(out), &events))
	actions := make([]string, 0, len(events))
	for _, e := range events {
		actions = append(actions, e.Action)
	}
	return actions
}

func TestLoginPersistsAcrossInvocations(t *testing.T) {
	h := newCLI(t)
	h.login()

	out, _, err := h.run("whoami")
	require.NoError(t, err)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "ops", info["profile"])
	assert.Equal(t, testutil.Email, info["user"].(map[string]any)["email"])
	assert.NotEmpty(t, info["token_expires_in"])
}

func TestLoginRejected(t *testing.T) {
	h := newCLI(t)

	_, _, err := h.run("login", "--email", testutil.Email, "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	_, _, err = h.run("login")
	require.Error(t, err)
}

func TestCommandsRequireLogin(t *testing.T) {
	h := newCLI(t)

	_, _, err := h.run("hospitals")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
	assert.Equal(t, 0, h.backend.Calls(http.MethodGet, "/api/hospitals/"))
}

func TestProfilesAreIsolated(t *testing.T) {
	h := newCLI(t)
	h.login()

	_, _, err := h.runAs("other", "whoami")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestExpiredSessionForcesLogout(t *testing.T) {
	h := newCLI(t)
	h.login()
	h.backend.Fail(http.MethodGet, "/api/alerts/", http.StatusUnauthorized)

	_, errOut, err := h.run("alerts")

	require.Error(t, err)
	assert.Contains(t, errOut, "medictl login")
	assert.Contains(t, h.activity(), models.AuditActionSessionExpired)

	_, _, err = h.run("whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestLogout(t *testing.T) {
	h := newCLI(t)
	h.login()

	_, _, err := h.run("logout")
	require.NoError(t, err)
	assert.Equal(t, 1, h.backend.Calls(http.MethodPost, "/api/auth/logout/"))

	_, _, err = h.run("whoami")
	require.Error(t, err)
}

func TestRegister(t *testing.T) {
	h := newCLI(t)

	_, _, err := h.run("register", "--hospital-name", "Lakeside", "--email", "owner@lakeside.org",
		"--phone", "555", "--address", "1 Lake Rd", "--password", "short")
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 8 characters long.", err.Error())

	out, _, err := h.run("register", "--hospital-name", "Lakeside", "--email", "owner@lakeside.org",
		"--phone", "555", "--address", "1 Lake Rd", "--password", "longenough")
	require.NoError(t, err)
	assert.Contains(t, out, "owner@lakeside.org")
	assert.Equal(t, []string{models.AuditActionLogin, models.AuditActionRegister}, h.activity())
}

func TestInventorySetStockToZero(t *testing.T) {
	h := newCLI(t)
	h.login()
	item := h.backend.AddInventory(models.InventoryItem{Hospital: 1, Medicine: 1, CurrentStock: 30, ReorderLevel: 5})

	_, _, err := h.run("inventory", "set-stock", "1000", "x")
	require.Error(t, err)

	_, _, err = h.run("inventory", "set-stock", itoa(item.ID), "0")
	require.NoError(t, err)

	out, _, err := h.run("inventory", "--view", "out_of_stock")
	require.NoError(t, err)
	var lines []inventoryLine
	require.NoError(t, json.Unmarshal([]byte(out), &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, models.StockStatusOutOfStock, lines[0].Status)
}

func TestAlertsAck(t *testing.T) {
	h := newCLI(t)
	h.login()
	alert := h.backend.AddAlert(models.Alert{Severity: models.SeverityCritical})

	_, _, err := h.run("alerts", "ack", itoa(alert.ID))
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusAcknowledged, h.backend.Alert(alert.ID).Status)

	out, _, err := h.run("alerts", "--status", "active")
	require.NoError(t, err)
	var alerts []models.Alert
	require.NoError(t, json.Unmarshal([]byte(out), &alerts))
	assert.Empty(t, alerts)
}

func TestPredictRun(t *testing.T) {
	h := newCLI(t)
	h.login()

	out, _, err := h.run("predict", "run")
	require.NoError(t, err)
	assert.Contains(t, out, "No inventory to analyze")
	assert.Equal(t, 0, h.backend.Calls(http.MethodPost, "/api/predictions/batch-predict/"))

	h.backend.AddInventory(models.InventoryItem{Hospital: 1, Medicine: 1, CurrentStock: 1, ReorderLevel: 5})
	out, _, err = h.run("predict", "run")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_predictions": 1`)

	out, _, err = h.run("predict", "status")
	require.NoError(t, err)
	assert.Contains(t, out, `"model_loaded": true`)
}

func TestHospitalsAndMedicines(t *testing.T) {
	h := newCLI(t)
	h.login()
	hosp := h.backend.AddHospital(models.Hospital{Name: "City General"})
	h.backend.AddMedicine(models.Medicine{Name: "Insulin", Category: "HORMONE", IsEssential: true})

	out, _, err := h.run("hospitals")
	require.NoError(t, err)
	assert.Contains(t, out, "City General")

	out, _, err = h.run("hospitals", "get", itoa(hosp.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "City General")

	out, _, err = h.run("hospitals", "inventory", itoa(hosp.ID), "--low-stock")
	require.NoError(t, err)
	assert.Contains(t, out, "[]")

	out, _, err = h.run("medicines", "--essential")
	require.NoError(t, err)
	assert.Contains(t, out, "Insulin")
}
