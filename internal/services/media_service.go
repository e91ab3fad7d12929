package services

import (
	"gorm.io/gorm"

	apperrors "shargea/internal/errors"
	"shargea/internal/models"
	"shargea/internal/store"
)

// mediaService handles media-related business logic.
type mediaService struct {
	store *store.Store[models.Media]
}

// NewMediaService creates a new MediaServicer.
func NewMediaService(db *gorm.DB) MediaServicer {
	return &mediaService{
		store: store.New[models.Media](db, apperrors.ErrMediaNotFound, apperrors.ErrMediaAlreadyLinked),
	}
}

// GetAllMedia retrieves all media owned by the user.
func (s *mediaService) GetAllMedia(userID string) ([]models.Media, error) {
	return s.store.List(userID, "")
}

// GetMediaByID retrieves a media record by ID for a specific user
func (s *mediaService) GetMediaByID(userID, mediaID string) (*models.Media, error) {
	return s.store.FindByID(mediaID, userID)
}

// CreateMedia creates a new media record
func (s *mediaService) CreateMedia(userID string, in CreateMediaInput) (*models.Media, error) {
	if in.Title == "" || in.URL == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "media title and url are required")
	}

	mediaType := in.Type
	if mediaType == "" {
		mediaType = models.MediaTypeImage
	}

	media := &models.Media{
		UserID:      userID,
		Title:       in.Title,
		URL:         in.URL,
		Description: in.Description,
		Type:        mediaType,
	}
	if err := s.store.Create(media); err != nil {
		return nil, err
	}
	return media, nil
}

// UpdateMedia updates an existing media record. An empty patch is a no-op
// read: the unchanged record is returned and no write is issued.
func (s *mediaService) UpdateMedia(userID, mediaID string, p UpdateMediaPatch) (*models.Media, error) {
	media, err := s.GetMediaByID(userID, mediaID)
	if err != nil {
		return nil, err
	}

	if p.Empty() {
		return media, nil
	}

	if err := checkPatchLen(p.Title, maxTitleLen, "title"); err != nil {
		return nil, err
	}
	if err := checkPatchLen(p.Description, maxDescriptionLen, "description"); err != nil {
		return nil, err
	}
	if err := checkPatchLen(p.URL, maxURLLen, "url"); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if p.Title.Present() {
		title, ok := p.Title.Value()
		if !ok || title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "media title must not be empty")
		}
		updates["title"] = title
	}
	if p.URL.Present() {
		url, ok := p.URL.Value()
		if !ok || url == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "media url must not be empty")
		}
		updates["url"] = url
	}
	if p.Description.Present() {
		updates["description"] = p.Description.Ptr()
	}
	if p.Type.Present() {
		mediaType, ok := p.Type.Value()
		if !ok || (mediaType != models.MediaTypeImage && mediaType != models.MediaTypeVideo) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "media type must be image or video")
		}
		updates["type"] = mediaType
	}

	if err := s.store.Updates(media, updates); err != nil {
		return nil, err
	}
	return media, nil
}

// DeleteMedia deletes a media record. Not-found reports an error; a media
// still linked by a category, transaction or user picture reports the row
// as still referenced.
func (s *mediaService) DeleteMedia(userID, mediaID string) error {
	return s.store.Delete(mediaID, userID)
}
