package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/manish-terminal/elastomech/internal/stock/service"
)

// AuthHandler 登录与令牌接口
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// SignIn POST /api/auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req service.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	resp, err := h.svc.SignIn(req)
	if err != nil {
		Unauthorized(c, err.Error())
		return
	}
	Success(c, resp)
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	pair, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		Unauthorized(c, err.Error())
		return
	}
	Success(c, pair)
}
