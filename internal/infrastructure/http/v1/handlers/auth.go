package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelierdesk/internal/core/apperror"
	appctx "atelierdesk/internal/core/context"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/domain/auth"
	"atelierdesk/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(ctx, req.ToAuthRequest())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, user, err := h.service.Login(ctx, req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: dto.FromToken(token),
		User:  dto.FromUser(user),
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	userCtx := appctx.GetUser(ctx)
	if userCtx == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	userID, err := id.Parse(userCtx.UserID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid user id"))
		return
	}

	user, err := h.service.GetUserByID(ctx, userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(user))
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)

	protected.GET("/me", h.Me)
}
