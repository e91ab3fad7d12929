package services

import (
	"fmt"

	apperrors "shargea/internal/errors"
	"shargea/internal/patch"
	"shargea/internal/uuid"
)

// Column limits shared by the update paths. Create requests are bounded by
// the handler bindings, but sparse patches reach the services unbounded;
// the limits are enforced here so an over-long value fails as invalid input
// instead of tripping a varchar constraint at write time.
const (
	maxTitleLen       = 25
	maxDescriptionLen = 250
	maxURLLen         = 2048
)

// checkPatchLen rejects a present string value longer than max characters.
func checkPatchLen(f patch.Field[string], max int, name string) error {
	if v, ok := f.Value(); ok && len(v) > max {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("%s must be at most %d characters", name, max))
	}
	return nil
}

// checkPatchUUID rejects a present, non-null reference whose value is not a
// UUID. An explicit null clears the link and carries no format to check.
func checkPatchUUID(f patch.Field[string], name string) error {
	if v, ok := f.Value(); ok && !uuid.IsValid(v) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name)
	}
	return nil
}
