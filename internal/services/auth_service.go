package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"gorm.io/gorm"

	apperrors "shargea/internal/errors"
	"shargea/internal/logger"
	"shargea/internal/mailer"
	"shargea/internal/middleware"
	"shargea/internal/models"
)

// authService handles signup, signin and email verification. The
// verification-enabled flag and the mailer are fixed at construction.
type authService struct {
	db                  *gorm.DB
	users               UserServicer
	mailer              mailer.Mailer
	verificationEnabled bool
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(db *gorm.DB, users UserServicer, m mailer.Mailer, verificationEnabled bool) AuthServicer {
	return &authService{
		db:                  db,
		users:               users,
		mailer:              m,
		verificationEnabled: verificationEnabled,
	}
}

// SignUp registers the user and, when verification is enabled, stores a
// one-time token and sends the verification email. The email send is
// best-effort: a failure is logged and the signup still succeeds.
func (s *authService) SignUp(ctx context.Context, email, password string, currency models.Currency) (*models.User, error) {
	user, err := s.users.SignUp(email, password, currency)
	if err != nil {
		return nil, err
	}

	if !s.verificationEnabled {
		return user, nil
	}

	token, err := generateVerificationToken()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	verification := &models.VerificationToken{
		UserID: user.ID,
		Token:  token,
		Email:  user.Email,
	}
	if err := s.db.Create(verification).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, token); err != nil {
		logger.Get().Errorw("failed to send verification email",
			"email", user.Email,
			"error", err.Error(),
		)
	}
	return user, nil
}

// SignIn validates credentials and returns a signed access token. A missing
// user and a wrong password are indistinguishable to the caller.
func (s *authService) SignIn(_ context.Context, email, password, ip string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if !s.users.VerifyPassword(user, password) {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if !user.Verified {
		return "", nil, apperrors.ErrEmailNotVerified
	}

	if err := s.users.RecordLogin(user.ID, ip); err != nil {
		logger.Get().Warnw("failed to record login", "user_id", user.ID, "error", err.Error())
	}

	token, err := middleware.GenerateAccessToken(user)
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return token, user, nil
}

// VerifyEmail marks the token's user as verified and consumes the token.
func (s *authService) VerifyEmail(_ context.Context, token string) error {
	var verification models.VerificationToken
	if err := s.db.Where("token = ?", token).First(&verification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTokenNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user, err := s.users.GetUserByID(verification.UserID)
	if err != nil {
		return err
	}
	if err := s.db.Model(user).Update("verified", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&verification).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// generateVerificationToken returns a 32-character random hex token.
func generateVerificationToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
