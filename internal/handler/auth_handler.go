package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rockalpatio/internal/service/auth"
	"rockalpatio/internal/util"
	"rockalpatio/pkg/logger"
)

type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	log := logger.WithTrace(c.Request.Context(), h.logger)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Login: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	token, u, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, log, "Login", err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"user":     u,
		"redirect": HomePath,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	log := logger.WithTrace(c.Request.Context(), h.logger)

	if err := h.svc.SignOut(c.Request.Context(), util.ExtractToken(c.Request)); err != nil {
		writeError(c, log, "Logout", err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect": LoginPath})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": CurrentUser(c)})
}
