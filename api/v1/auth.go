package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/project-registry/dto"
	"github.com/project-registry/services"
)

// AuthController handles account registration and login
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// RegisterRoutes registers auth routes
func (c *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/register", c.Register)
	router.POST("/login", c.Login)
}

// Register handles user registration
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, invalidPayload(err))
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		c.respondAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles user authentication
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, invalidPayload(err))
		return
	}

	authResponse, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		c.respondAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Login successful",
		"token":     authResponse.Token,
		"expiresAt": authResponse.ExpiresAt,
	})
}

// respondAuthError keeps store and signing failures out of auth responses.
func (c *AuthController) respondAuthError(ctx *gin.Context, err error) {
	if errors.Is(err, services.ErrEmailInUse) || errors.Is(err, services.ErrInvalidCredentials) {
		respondError(ctx, err)
		return
	}
	respondServerError(ctx, err)
}
