package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "shargea/internal/errors"
	"shargea/internal/models"
	"shargea/internal/patch"
	"shargea/internal/services"
)

// MediaHandler handles media-related requests
type MediaHandler struct {
	mediaService services.MediaServicer
	auditService services.AuditServicer
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService services.MediaServicer, auditService services.AuditServicer) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, auditService: auditService}
}

// CreateMediaRequest represents the request payload for creating a media record
type CreateMediaRequest struct {
	Title       string           `json:"title" binding:"required,max=255"`
	URL         string           `json:"url" binding:"required,url,max=2048"`
	Description *string          `json:"description" binding:"omitempty,max=250"`
	Type        models.MediaType `json:"type" binding:"omitempty,mediatype"`
}

// UpdateMediaRequest represents the sparse request payload for updating a
// media record. Absent keys leave the field untouched.
type UpdateMediaRequest struct {
	Title       patch.Field[string]           `json:"title"`
	URL         patch.Field[string]           `json:"url"`
	Description patch.Field[string]           `json:"description"`
	Type        patch.Field[models.MediaType] `json:"type"`
}

// GetAllMedia handles the retrieval of the user's media records
// @Summary     List media
// @Description Get all media records for the authenticated user
// @Tags        media
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Media "List of media records"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /media [get]
func (h *MediaHandler) GetAllMedia(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	media, err := h.mediaService.GetAllMedia(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": media})
}

// GetMediaByID handles the retrieval of a single media record
// @Summary     Get a media record
// @Description Get one media record by ID
// @Tags        media
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Media ID"
// @Success     200 {object} models.Media "Media record"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /media/{id} [get]
func (h *MediaHandler) GetMediaByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	mediaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	media, err := h.mediaService.GetMediaByID(userID, mediaID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": media})
}

// CreateMedia handles the creation of a new media record
// @Summary     Create a media record
// @Description Register a media URL; type defaults to image when omitted
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateMediaRequest true "Media details"
// @Success     201 {object} models.Media "Media record created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /media [post]
func (h *MediaHandler) CreateMedia(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	media, err := h.mediaService.CreateMedia(userID, services.CreateMediaInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create", "media", media.ID, c.ClientIP(), nil)
	c.JSON(http.StatusCreated, gin.H{"media": media})
}

// UpdateMedia handles a sparse update of a media record
// @Summary     Update a media record
// @Description Apply a sparse patch to a media record; an empty patch returns the unchanged record
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Media ID"
// @Param       request body UpdateMediaRequest true "Fields to update"
// @Success     200 {object} models.Media "Updated media record"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /media/{id} [patch]
func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	mediaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	media, err := h.mediaService.UpdateMedia(userID, mediaID, services.UpdateMediaPatch{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "update", "media", mediaID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"media": media})
}

// DeleteMedia handles the deletion of a media record
// @Summary     Delete a media record
// @Description Delete a media record that is not linked to any other resource
// @Tags        media
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Media ID"
// @Success     204 "Media record deleted"
// @Failure     400 {object} ErrorResponse "Media still referenced"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /media/{id} [delete]
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	mediaID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.mediaService.DeleteMedia(userID, mediaID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "media", mediaID, c.ClientIP(), nil)
	c.Status(http.StatusNoContent)
}
