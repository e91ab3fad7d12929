package services

import (
	apperrors "shargea/internal/errors"
	"shargea/internal/logger"
	"shargea/internal/patch"
)

// referenceGuard validates foreign IDs carried by a mutation intent before
// anything is persisted. Each check resolves the referenced entity through
// its ownership-scoped service, so a nonexistent ID and an ID owned by
// another user fail identically. The ownership-scoped lookup is what the
// store's foreign-key constraint alone cannot provide: the constraint can
// tell "exists" from "missing" but not "mine" from "someone else's".
type referenceGuard struct {
	media      MediaServicer
	categories CategoryServicer
}

// checkMedia confirms the media exists and belongs to userID. A nil ID is
// trivially valid. Any lookup failure is remapped to a bad-request error;
// the underlying not-found never reaches the caller.
func (g *referenceGuard) checkMedia(userID string, imageID *string) error {
	if imageID == nil {
		return nil
	}
	if _, err := g.media.GetMediaByID(userID, *imageID); err != nil {
		logger.Get().Warnw("media reference not visible to user",
			"user_id", userID,
			"media_id", *imageID,
			"error", err.Error(),
		)
		return apperrors.Wrap(apperrors.ErrInvalidReference, err)
	}
	return nil
}

// checkCategory confirms the category exists and belongs to userID.
func (g *referenceGuard) checkCategory(userID string, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	if _, err := g.categories.GetCategoryByID(userID, *categoryID); err != nil {
		logger.Get().Warnw("category reference not visible to user",
			"user_id", userID,
			"category_id", *categoryID,
			"error", err.Error(),
		)
		return apperrors.Wrap(apperrors.ErrInvalidReference, err)
	}
	return nil
}

// mediaReconciler performs best-effort cleanup of media left orphaned by a
// mutation that already succeeded. Its failures are logged and swallowed;
// the enclosing operation's outcome is never changed.
type mediaReconciler struct {
	media MediaServicer
}

// reconcile deletes the previously attached media after an update, but only
// when the patch explicitly set the image field (an explicit null counts)
// and the new value is null or different from the previous one.
func (r *mediaReconciler) reconcile(userID string, previousImageID *string, imageField patch.Field[string], entity string) {
	if previousImageID == nil || !imageField.Present() {
		return
	}
	if v, ok := imageField.Value(); ok && v == *previousImageID {
		return
	}
	r.cleanup(userID, previousImageID, entity)
}

// cleanup attempts to delete the given media after an entity deletion that
// already succeeded. A nil ID is a no-op.
func (r *mediaReconciler) cleanup(userID string, imageID *string, entity string) {
	if imageID == nil {
		return
	}
	if err := r.media.DeleteMedia(userID, *imageID); err != nil {
		logger.Get().Errorw("mutation succeeded but attached media could not be deleted",
			"entity", entity,
			"media_id", *imageID,
			"user_id", userID,
			"error", err.Error(),
		)
	}
}
