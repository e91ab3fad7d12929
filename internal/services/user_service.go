package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "shargea/internal/errors"
	"shargea/internal/models"
)

const invalidUserReferenceMsg = "Invalid pictureId or defaultCategoryId provided"

// userService handles user-related business logic. Users are the ownership
// root, so this service queries the database directly instead of going
// through an ownership-scoped store.
type userService struct {
	db                  *gorm.DB
	guard               *referenceGuard
	reconciler          *mediaReconciler
	verificationEnabled bool
}

// NewUserService creates a new UserServicer. verificationEnabled decides
// whether freshly signed-up users start unverified.
func NewUserService(db *gorm.DB, media MediaServicer, categories CategoryServicer, verificationEnabled bool) UserServicer {
	return &userService{
		db:                  db,
		guard:               &referenceGuard{media: media, categories: categories},
		reconciler:          &mediaReconciler{media: media},
		verificationEnabled: verificationEnabled,
	}
}

// SignUp registers a new user. A duplicate email surfaces as a conflict.
func (s *userService) SignUp(email, password string, currency models.Currency) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if currency == "" {
		currency = models.CurrencyEUR
	}

	user := &models.User{
		Email:    strings.ToLower(email),
		Password: string(hashedPassword),
		Currency: currency,
		Verified: !s.verificationEnabled,
	}
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateEmail, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}

// RecordLogin stores the time and source address of a successful signin.
func (s *userService) RecordLogin(userID, ip string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	now := time.Now()
	if err := s.db.Model(user).Updates(map[string]interface{}{
		"last_login_at": &now,
		"last_login_ip": ip,
	}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateUser updates the current user's profile links. An empty patch is a
// no-op read; a replaced or cleared profile picture is reconciled
// best-effort after the write.
func (s *userService) UpdateUser(userID string, p UpdateUserPatch) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if p.Empty() {
		return user, nil
	}

	if err := checkPatchUUID(p.DefaultCategoryID, "defaultCategoryId"); err != nil {
		return nil, err
	}
	if err := checkPatchUUID(p.PictureID, "pictureId"); err != nil {
		return nil, err
	}

	if err := s.guard.checkCategory(userID, p.DefaultCategoryID.Ptr()); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidReference, invalidUserReferenceMsg)
	}
	if err := s.guard.checkMedia(userID, p.PictureID.Ptr()); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidReference, invalidUserReferenceMsg)
	}

	// Captured before the write mutates the loaded row.
	previousPictureID := user.PictureID

	updates := make(map[string]interface{})
	if p.DefaultCategoryID.Present() {
		updates["default_category_id"] = p.DefaultCategoryID.Ptr()
	}
	if p.PictureID.Present() {
		updates["picture_id"] = p.PictureID.Ptr()
	}
	if p.Currency.Present() {
		currency, ok := p.Currency.Value()
		if !ok || !currency.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported currency")
		}
		updates["currency"] = currency
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, apperrors.WithMessage(apperrors.ErrInvalidReference, invalidUserReferenceMsg)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperrors.Wrap(apperrors.ErrMediaAlreadyLinked, err)
		default:
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	s.reconciler.reconcile(userID, previousPictureID, p.PictureID, "user")
	return user, nil
}

// DeleteUser removes the user row. Rows that still reference the user
// through a required foreign key make the store reject the delete; that is
// not special-cased and surfaces as a generic server error.
func (s *userService) DeleteUser(userID string) error {
	if err := s.db.Where("id = ?", userID).Delete(&models.User{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
