package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
	"github.com/edusuite/school_finance_api/internal/middleware"
	"github.com/edusuite/school_finance_api/pkg/config"
)

type authHandler struct {
	cfg      *config.Config
	userSvc  portssvc.UserSvcFacade
	tokenSvc portssvc.TokenSvcFacade
}

func newAuthHandler(cfg *config.Config, userSvc portssvc.UserSvcFacade, tokenSvc portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{cfg: cfg, userSvc: userSvc, tokenSvc: tokenSvc}
}

// setRefreshCookie attaches the refresh token as an HTTP-only cookie scoped
// to the auth endpoints.
func (h *authHandler) setRefreshCookie(c *gin.Context, token string) {
	maxAge := int(h.cfg.RefreshTokenExpiryDuration.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, token, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *authHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// register godoc
// @Summary Register a new user
// @Description Creates a local account. The first account of a deployment becomes SUPER_ADMIN.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userSvc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("User registered via API", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, err := h.tokenSvc.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	refreshToken, err := h.tokenSvc.IssueRefreshToken(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setRefreshCookie(c, refreshToken)

	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken, User: dto.ToUserResponse(user)})
}

// refresh godoc
// @Summary Exchange the refresh cookie for a new access token
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} map[string]string "Missing or invalid refresh token"
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	raw, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token missing"})
		return
	}

	user, err := h.tokenSvc.ValidateRefreshToken(c.Request.Context(), raw)
	if err != nil {
		h.clearRefreshCookie(c)
		respondError(c, err)
		return
	}

	accessToken, err := h.tokenSvc.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	// Rotate the refresh token on every use.
	refreshToken, err := h.tokenSvc.IssueRefreshToken(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setRefreshCookie(c, refreshToken)

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: accessToken})
}

// logout revokes the stored refresh token and clears the cookie.
func (h *authHandler) logout(c *gin.Context) {
	raw, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err == nil && raw != "" {
		if user, vErr := h.tokenSvc.ValidateRefreshToken(c.Request.Context(), raw); vErr == nil {
			if rErr := h.tokenSvc.RevokeRefreshToken(c.Request.Context(), user.UserID); rErr != nil {
				respondError(c, rErr)
				return
			}
		}
	}
	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}
