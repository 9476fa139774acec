package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/tastebook-backend/internal/http/response"
	"github.com/yungbote/tastebook-backend/internal/platform/ctxutil"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
	"github.com/yungbote/tastebook-backend/internal/services"
)

type AuthHandler struct {
	log  *logger.Logger
	auth *services.AuthService
}

func NewAuthHandler(baseLog *logger.Logger, auth *services.AuthService) *AuthHandler {
	return &AuthHandler{log: baseLog.With("handler", "AuthHandler"), auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailValidation(c, err)
		return
	}
	user, pair, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, gin.H{"user": user, "tokens": pair})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailValidation(c, err)
		return
	}
	user, pair, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"user": user, "tokens": pair})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailValidation(c, err)
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{"tokens": pair})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := h.auth.Logout(c.Request.Context(), rd.UserID); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}
