package handler

import (
	"net/http"

	"hospital-inventory-dashboard/internal/middleware"
	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DashboardRoute is where a successful login or registration lands
const DashboardRoute = "/dashboard"

type AuthHandler struct {
	logger zerolog.Logger
}

func NewAuthHandler(logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{logger: logger}
}

// LoginPage describes the login route. Signed-in visitors go straight to
// the dashboard.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	scope := middleware.GetScope(c)
	if scope.Auth.IsAuthenticated() {
		c.Redirect(http.StatusFound, DashboardRoute)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"page":  "login",
		"modes": []string{"login", "register"},
	})
}

// Login handles the sign-in form
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	scope := middleware.GetScope(c)
	if err := scope.Auth.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		h.logger.Info().Err(err).Str("profile", scope.Profile).Msg("login failed")
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials. Please check your email and password.")
		return
	}

	scope.Audit(models.AuditActionLogin, req.Email)
	c.Redirect(http.StatusSeeOther, DashboardRoute)
}

// Register signs up a hospital admin, then signs them in
func (h *AuthHandler) Register(c *gin.Context) {
	var form models.RegistrationForm
	if err := c.ShouldBind(&form); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	scope := middleware.GetScope(c)
	ctx := c.Request.Context()
	if _, err := scope.Services.Auth.Register(ctx, form.Request()); err != nil {
		fail(c, scope, err, "Registration failed")
		return
	}
	scope.Audit(models.AuditActionRegister, form.Email)

	if err := scope.Auth.Login(ctx, form.Email, form.Password); err != nil {
		fail(c, scope, err, "Registration failed")
		return
	}
	scope.Audit(models.AuditActionLogin, form.Email)
	c.Redirect(http.StatusSeeOther, DashboardRoute)
}

// Logout tells the backend the session is over, then clears it locally and
// sends the browser to the login page. The backend call is best-effort.
func (h *AuthHandler) Logout(c *gin.Context) {
	scope := middleware.GetScope(c)
	if err := scope.Services.Auth.Logout(c.Request.Context()); err != nil {
		h.logger.Warn().Err(err).Str("profile", scope.Profile).Msg("backend logout failed")
	}
	scope.Audit(models.AuditActionLogout, "")
	scope.Auth.Logout()
}
