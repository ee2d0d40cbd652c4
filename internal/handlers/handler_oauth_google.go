package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
	"github.com/edusuite/school_finance_api/internal/middleware"
	"github.com/edusuite/school_finance_api/pkg/config"
)

type googleOAuthHandler struct {
	cfg       *config.Config
	oauthSvc  portssvc.GoogleOAuthSvcFacade
	userSvc   portssvc.UserSvcFacade
	tokenSvc  portssvc.TokenSvcFacade
	setCookie func(c *gin.Context, token string)
}

func newGoogleOAuthHandler(cfg *config.Config, oauthSvc portssvc.GoogleOAuthSvcFacade, userSvc portssvc.UserSvcFacade, tokenSvc portssvc.TokenSvcFacade, setCookie func(c *gin.Context, token string)) *googleOAuthHandler {
	return &googleOAuthHandler{cfg: cfg, oauthSvc: oauthSvc, userSvc: userSvc, tokenSvc: tokenSvc, setCookie: setCookie}
}

// exchangeCode godoc
// @Summary Complete Google sign-in
// @Description Exchanges the authorization code from the Google consent screen for application tokens. First-time users are created with the AUDITOR role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleCallbackRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid or expired code"
// @Failure 401 {object} map[string]string "Unverified Google account"
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GoogleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	token, err := h.oauthSvc.ExchangeCodeForToken(c.Request.Context(), req.Code)
	if err != nil {
		logger.Warn("Google code exchange failed", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired authorization code"})
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google response did not include an identity token"})
		return
	}

	payload, err := h.oauthSvc.ValidateGoogleIDToken(c.Request.Context(), rawIDToken)
	if err != nil {
		logger.Warn("Google identity token rejected", "error", err.Error())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google identity could not be verified"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)

	user, err := h.userSvc.CreateOAuthUser(c.Request.Context(), name, email, domain.ProviderGoogle, payload.Subject, emailVerified)
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
	h.setCookie(c, refreshToken)

	logger.Info("Google sign-in completed", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken, User: dto.ToUserResponse(user)})
}
