// Package store implements the ownership-scoped persistence layer shared by
// all user-owned resources. Every read and write is filtered by the owning
// user's ID; no operation can observe or mutate another owner's rows.
package store

import (
	"errors"

	"gorm.io/gorm"

	apperrors "shargea/internal/errors"
	"shargea/internal/logger"
)

// Store wraps a GORM connection for one entity type. The notFound sentinel
// is returned for absent rows and for rows owned by another user, which are
// deliberately indistinguishable. The conflict sentinel is returned for
// unique-constraint violations (duplicate email, media linked twice).
//
// Store-level constraint errors are recognized through GORM's error
// translation, so the database manager must open connections with
// TranslateError enabled.
type Store[T any] struct {
	db       *gorm.DB
	notFound *apperrors.AppError
	conflict *apperrors.AppError
}

// New creates a Store for entity type T.
func New[T any](db *gorm.DB, notFound, conflict *apperrors.AppError) *Store[T] {
	return &Store[T]{db: db, notFound: notFound, conflict: conflict}
}

// FindByID retrieves the entity with the given ID owned by userID.
func (s *Store[T]) FindByID(id, userID string) (*T, error) {
	var entity T
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entity, nil
}

// List retrieves all entities owned by userID. A non-empty search issues
// two substring clauses, one against title and one against description,
// OR-combined; a row matching both is still returned once.
func (s *Store[T]) List(userID, search string) ([]T, error) {
	query := s.db.Where("user_id = ?", userID)
	if search != "" {
		like := "%" + search + "%"
		query = s.db.
			Where("user_id = ? AND title LIKE ?", userID, like).
			Or("user_id = ? AND description LIKE ?", userID, like)
	}

	var entities []T
	if err := query.Find(&entities).Error; err != nil {
		logger.Get().Errorw("failed to list entities",
			"user_id", userID,
			"search", search,
			"error", err.Error(),
		)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entities, nil
}

// Create persists a new entity. The caller sets the owner ID on the entity;
// constraint violations surface as mapped domain errors.
func (s *Store[T]) Create(entity *T) error {
	if err := s.db.Create(entity).Error; err != nil {
		return s.mapWriteError(err)
	}
	return nil
}

// Save persists all fields of an already-loaded entity.
func (s *Store[T]) Save(entity *T) error {
	if err := s.db.Save(entity).Error; err != nil {
		return s.mapWriteError(err)
	}
	return nil
}

// Updates applies a column map to an already-loaded entity.
func (s *Store[T]) Updates(entity *T, updates map[string]interface{}) error {
	if err := s.db.Model(entity).Updates(updates).Error; err != nil {
		return s.mapWriteError(err)
	}
	return nil
}

// Delete removes the entity with the given ID owned by userID. Zero rows
// affected reports notFound; a foreign-key violation means the row is still
// referenced elsewhere.
func (s *Store[T]) Delete(id, userID string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(new(T))
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return apperrors.Wrap(apperrors.ErrStillReferenced, res.Error)
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return s.notFound
	}
	return nil
}

// mapWriteError translates store-level constraint violations into domain
// errors. A foreign-key violation on a write means an attribute referenced
// a nonexistent or cross-owner row that slipped past the guard between
// validation and persistence.
func (s *Store[T]) mapWriteError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.Wrap(apperrors.ErrInvalidReference, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Wrap(s.conflict, err)
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}
