package services

import (
	"gorm.io/gorm"

	apperrors "shargea/internal/errors"
	"shargea/internal/logger"
	"shargea/internal/models"
	"shargea/internal/store"
)

const invalidCategoryReferenceMsg = "Invalid imageId or parentCategoryId provided"

// categoryService handles category-related business logic, including the
// parent-tree cycle validation.
type categoryService struct {
	store      *store.Store[models.Category]
	guard      *referenceGuard
	reconciler *mediaReconciler
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, media MediaServicer) CategoryServicer {
	s := &categoryService{
		store:      store.New[models.Category](db, apperrors.ErrCategoryNotFound, apperrors.ErrMediaAlreadyLinked),
		reconciler: &mediaReconciler{media: media},
	}
	s.guard = &referenceGuard{media: media, categories: s}
	return s
}

// GetCategories retrieves the user's categories, optionally filtered by a
// free-text search against title and description.
func (s *categoryService) GetCategories(userID, search string) ([]models.Category, error) {
	return s.store.List(userID, search)
}

// GetCategoryByID retrieves a category by ID for a specific user
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	return s.store.FindByID(categoryID, userID)
}

// CreateCategory creates a new category. Foreign references are validated
// against the owning user before the write; the store's foreign-key
// constraint remains the backstop for the unlocked window in between.
func (s *categoryService) CreateCategory(userID string, in CreateCategoryInput) (*models.Category, error) {
	if in.Title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category title is required")
	}

	if err := s.guard.checkMedia(userID, in.ImageID); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidReference, invalidCategoryReferenceMsg)
	}
	if err := s.guard.checkCategory(userID, in.ParentCategoryID); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidReference, invalidCategoryReferenceMsg)
	}

	category := &models.Category{
		UserID:           userID,
		Title:            in.Title,
		Description:      in.Description,
		ImageID:          in.ImageID,
		ParentCategoryID: in.ParentCategoryID,
	}
	if err := s.store.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates an existing category. An empty patch is a no-op
// read. A parent change is validated for cycles against the proposed
// parent before anything is persisted; after a successful write the
// previously attached image is reconciled best-effort.
func (s *categoryService) UpdateCategory(userID, categoryID string, p UpdateCategoryPatch) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	// Captured before the write mutates the loaded row.
	previousImageID := category.ImageID

	if p.Empty() {
		return category, nil
	}

	if err := checkPatchLen(p.Title, maxTitleLen, "title"); err != nil {
		return nil, err
	}
	if err := checkPatchLen(p.Description, maxDescriptionLen, "description"); err != nil {
		return nil, err
	}
	if err := checkPatchUUID(p.ImageID, "imageId"); err != nil {
		return nil, err
	}
	if err := checkPatchUUID(p.ParentCategoryID, "parentCategoryId"); err != nil {
		return nil, err
	}

	if err := s.guard.checkMedia(userID, p.ImageID.Ptr()); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidReference, invalidCategoryReferenceMsg)
	}
	if err := s.guard.checkCategory(userID, p.ParentCategoryID.Ptr()); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidReference, invalidCategoryReferenceMsg)
	}
	if err := s.checkForCycle(userID, categoryID, p.ParentCategoryID.Ptr()); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if p.Title.Present() {
		title, ok := p.Title.Value()
		if !ok || title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category title must not be empty")
		}
		updates["title"] = title
	}
	if p.Description.Present() {
		updates["description"] = p.Description.Ptr()
	}
	if p.ImageID.Present() {
		updates["image_id"] = p.ImageID.Ptr()
	}
	if p.ParentCategoryID.Present() {
		updates["parent_category_id"] = p.ParentCategoryID.Ptr()
	}

	if err := s.store.Updates(category, updates); err != nil {
		return nil, err
	}

	s.reconciler.reconcile(userID, previousImageID, p.ImageID, "category")
	return category, nil
}

// DeleteCategory deletes a category, then attempts to delete its attached
// image. The category is fetched first to capture the image reference; the
// row delete alone cannot report it back.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(categoryID, userID); err != nil {
		return err
	}

	s.reconciler.cleanup(userID, category.ImageID, "category")
	return nil
}

// checkForCycle rejects a proposed parent link that would make the
// category's ancestor chain revisit the category itself.
//
// The self-parent case fails without any store lookup. Otherwise the chain
// is walked upward iteratively from the candidate; a missing or foreign
// ancestor is logged and allowed (the walk cannot verify what it cannot
// see), and a visited set stops the walk on pathological pre-existing
// cycles that do not involve this category.
func (s *categoryService) checkForCycle(userID, categoryID string, candidateParentID *string) error {
	if candidateParentID == nil {
		return nil
	}
	if *candidateParentID == categoryID {
		return apperrors.ErrCircularReference
	}

	visited := map[string]bool{categoryID: true}
	current := *candidateParentID
	for {
		if visited[current] {
			return nil
		}
		visited[current] = true

		ancestor, err := s.store.FindByID(current, userID)
		if err != nil {
			logger.Get().Warnw("could not retrieve ancestor while checking for cycles",
				"category_id", current,
				"user_id", userID,
				"error", err.Error(),
			)
			return nil
		}
		if ancestor.ParentCategoryID == nil {
			return nil
		}
		if *ancestor.ParentCategoryID == categoryID {
			return apperrors.ErrCircularReference
		}
		current = *ancestor.ParentCategoryID
	}
}
