package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "shargea/internal/errors"
	"shargea/internal/models"
	"shargea/internal/patch"
	"shargea/internal/services"
)

// UserHandler handles requests for the authenticated user's profile
type UserHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserServicer, auditService services.AuditServicer) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

// UpdateUserRequest represents the sparse request payload for updating the
// current user. DefaultCategoryID and PictureID may be set to null to clear.
type UpdateUserRequest struct {
	DefaultCategoryID patch.Field[string]          `json:"default_category_id"`
	PictureID         patch.Field[string]          `json:"picture_id"`
	Currency          patch.Field[models.Currency] `json:"currency"`
}

// GetCurrentUser handles the retrieval of the authenticated user's profile
// @Summary     Get current user
// @Description Get the authenticated user's profile
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.User "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/current [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateCurrentUser handles a sparse update of the authenticated user
// @Summary     Update current user
// @Description Apply a sparse patch to the authenticated user's profile; an empty patch returns the unchanged profile
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateUserRequest true "Fields to update"
// @Success     200 {object} models.User "Updated user profile"
// @Failure     400 {object} ErrorResponse "Invalid input or reference"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/current [patch]
func (h *UserHandler) UpdateCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpdateUser(userID, services.UpdateUserPatch{
		DefaultCategoryID: req.DefaultCategoryID,
		PictureID:         req.PictureID,
		Currency:          req.Currency,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "update", "user", userID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteCurrentUser handles the deletion of the authenticated user
// @Summary     Delete current user
// @Description Delete the authenticated user and all owned resources
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     204 "User deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/current [delete]
func (h *UserHandler) DeleteCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "user", userID, c.ClientIP(), nil)
	c.Status(http.StatusNoContent)
}
