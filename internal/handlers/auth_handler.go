package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "shargea/internal/errors"
	"shargea/internal/models"
	"shargea/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService  services.AuthServicer
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{authService: authService, auditService: auditService}
}

// SignUpRequest represents the signup request payload
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Currency string `json:"currency" binding:"omitempty,currency"`
}

// SignInRequest represents the signin request payload
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	AccessToken string `json:"access_token"`
}

// SignUp handles user registration
// @Summary     Sign up
// @Description Register a new user; sends a verification email when enabled
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SignUpRequest true "User credentials"
// @Success     201 {object} models.User "User registered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), req.Email, req.Password, models.Currency(req.Currency))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, "signup", "user", user.ID, c.ClientIP(), nil)
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// SignIn handles user login
// @Summary     Sign in
// @Description Authenticate with email and password, returns a JWT access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SignInRequest true "User credentials"
// @Success     200 {object} AuthResponse "Token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials or unverified email"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	token, user, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, "signin", "user", user.ID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, AuthResponse{AccessToken: token})
}

// VerifyEmail handles the email verification link
// @Summary     Verify email
// @Description Consume a verification token and mark the account verified
// @Tags        auth
// @Produce     json
// @Param       token path string true "Verification token"
// @Success     200 {object} map[string]string "Email verified"
// @Failure     404 {object} ErrorResponse "Token not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/email/verify/{token} [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	if err := h.authService.VerifyEmail(c.Request.Context(), token); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "verified"})
}
