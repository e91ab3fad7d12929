package services

import (
	"context"
	"time"

	"shargea/internal/models"
	"shargea/internal/patch"
)

// CreateMediaInput holds the attributes for a new media record.
type CreateMediaInput struct {
	Title       string
	URL         string
	Description *string
	Type        models.MediaType
}

// UpdateMediaPatch is a sparse media update; only present fields are applied.
type UpdateMediaPatch struct {
	Title       patch.Field[string]
	URL         patch.Field[string]
	Description patch.Field[string]
	Type        patch.Field[models.MediaType]
}

// Empty reports whether no field is present.
func (p UpdateMediaPatch) Empty() bool {
	return !p.Title.Present() && !p.URL.Present() && !p.Description.Present() && !p.Type.Present()
}

// MediaServicer defines the contract for media-related business logic.
type MediaServicer interface {
	GetAllMedia(userID string) ([]models.Media, error)
	GetMediaByID(userID, mediaID string) (*models.Media, error)
	CreateMedia(userID string, in CreateMediaInput) (*models.Media, error)
	UpdateMedia(userID, mediaID string, p UpdateMediaPatch) (*models.Media, error)
	DeleteMedia(userID, mediaID string) error
}

// CreateCategoryInput holds the attributes for a new category.
type CreateCategoryInput struct {
	Title            string
	Description      *string
	ImageID          *string
	ParentCategoryID *string
}

// UpdateCategoryPatch is a sparse category update. ImageID and
// ParentCategoryID may be explicitly set to null to clear the link.
type UpdateCategoryPatch struct {
	Title            patch.Field[string]
	Description      patch.Field[string]
	ImageID          patch.Field[string]
	ParentCategoryID patch.Field[string]
}

// Empty reports whether no field is present.
func (p UpdateCategoryPatch) Empty() bool {
	return !p.Title.Present() && !p.Description.Present() && !p.ImageID.Present() && !p.ParentCategoryID.Present()
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	GetCategories(userID, search string) ([]models.Category, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	CreateCategory(userID string, in CreateCategoryInput) (*models.Category, error)
	UpdateCategory(userID, categoryID string, p UpdateCategoryPatch) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// CreateTransactionInput holds the attributes for a new transaction.
type CreateTransactionInput struct {
	Title       string
	Description *string
	Amount      float64
	Date        *time.Time
	CategoryID  *string
	ImageID     *string
}

// UpdateTransactionPatch is a sparse transaction update.
type UpdateTransactionPatch struct {
	Title       patch.Field[string]
	Description patch.Field[string]
	Amount      patch.Field[float64]
	Date        patch.Field[time.Time]
	CategoryID  patch.Field[string]
	ImageID     patch.Field[string]
}

// Empty reports whether no field is present.
func (p UpdateTransactionPatch) Empty() bool {
	return !p.Title.Present() && !p.Description.Present() && !p.Amount.Present() &&
		!p.Date.Present() && !p.CategoryID.Present() && !p.ImageID.Present()
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	GetTransactions(userID, search string) ([]models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	CreateTransaction(userID string, in CreateTransactionInput) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, p UpdateTransactionPatch) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// UpdateUserPatch is a sparse update of the current user's profile links.
type UpdateUserPatch struct {
	DefaultCategoryID patch.Field[string]
	PictureID         patch.Field[string]
	Currency          patch.Field[models.Currency]
}

// Empty reports whether no field is present.
func (p UpdateUserPatch) Empty() bool {
	return !p.DefaultCategoryID.Present() && !p.PictureID.Present() && !p.Currency.Present()
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	SignUp(email, password string, currency models.Currency) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	RecordLogin(userID, ip string) error
	UpdateUser(userID string, p UpdateUserPatch) (*models.User, error)
	DeleteUser(userID string) error
}

// AuthServicer defines the contract for signup, signin and email verification.
type AuthServicer interface {
	SignUp(ctx context.Context, email, password string, currency models.Currency) (*models.User, error)
	SignIn(ctx context.Context, email, password, ip string) (string, *models.User, error)
	VerifyEmail(ctx context.Context, token string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
