package services

import (
	"gorm.io/gorm"

	apperrors "shargea/internal/errors"
	"shargea/internal/models"
	"shargea/internal/store"
)

const invalidTransactionReferenceMsg = "Invalid imageId or categoryId provided"

// transactionService handles transaction-related business logic.
type transactionService struct {
	store      *store.Store[models.Transaction]
	guard      *referenceGuard
	reconciler *mediaReconciler
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, media MediaServicer, categories CategoryServicer) TransactionServicer {
	return &transactionService{
		store:      store.New[models.Transaction](db, apperrors.ErrTransactionNotFound, apperrors.ErrMediaAlreadyLinked),
		guard:      &referenceGuard{media: media, categories: categories},
		reconciler: &mediaReconciler{media: media},
	}
}

// GetTransactions retrieves the user's transactions, optionally filtered by
// a free-text search against title and description.
func (s *transactionService) GetTransactions(userID, search string) ([]models.Transaction, error) {
	return s.store.List(userID, search)
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	return s.store.FindByID(transactionID, userID)
}

// CreateTransaction creates a new transaction after validating its foreign
// references against the owning user.
func (s *transactionService) CreateTransaction(userID string, in CreateTransactionInput) (*models.Transaction, error) {
	if in.Title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction title is required")
	}
	if in.Amount == 0 {
		return nil, apperrors.ErrZeroAmount
	}

	if err := s.guard.checkMedia(userID, in.ImageID); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidReference, invalidTransactionReferenceMsg)
	}
	if err := s.guard.checkCategory(userID, in.CategoryID); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidReference, invalidTransactionReferenceMsg)
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        in.Date,
		CategoryID:  in.CategoryID,
		ImageID:     in.ImageID,
	}
	if err := s.store.Create(transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

// UpdateTransaction updates an existing transaction. An empty patch is a
// no-op read; after a successful write the previously attached image is
// reconciled best-effort.
func (s *transactionService) UpdateTransaction(userID, transactionID string, p UpdateTransactionPatch) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	// Captured before the write mutates the loaded row.
	previousImageID := transaction.ImageID

	if p.Empty() {
		return transaction, nil
	}

	if err := checkPatchLen(p.Title, maxTitleLen, "title"); err != nil {
		return nil, err
	}
	if err := checkPatchLen(p.Description, maxDescriptionLen, "description"); err != nil {
		return nil, err
	}
	if err := checkPatchUUID(p.CategoryID, "categoryId"); err != nil {
		return nil, err
	}
	if err := checkPatchUUID(p.ImageID, "imageId"); err != nil {
		return nil, err
	}

	if err := s.guard.checkMedia(userID, p.ImageID.Ptr()); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidReference, invalidTransactionReferenceMsg)
	}
	if err := s.guard.checkCategory(userID, p.CategoryID.Ptr()); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidReference, invalidTransactionReferenceMsg)
	}

	updates := make(map[string]interface{})
	if p.Title.Present() {
		title, ok := p.Title.Value()
		if !ok || title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction title must not be empty")
		}
		updates["title"] = title
	}
	if p.Description.Present() {
		updates["description"] = p.Description.Ptr()
	}
	if p.Amount.Present() {
		amount, ok := p.Amount.Value()
		if !ok || amount == 0 {
			return nil, apperrors.ErrZeroAmount
		}
		updates["amount"] = amount
	}
	if p.Date.Present() {
		updates["date"] = p.Date.Ptr()
	}
	if p.CategoryID.Present() {
		updates["category_id"] = p.CategoryID.Ptr()
	}
	if p.ImageID.Present() {
		updates["image_id"] = p.ImageID.Ptr()
	}

	if err := s.store.Updates(transaction, updates); err != nil {
		return nil, err
	}

	s.reconciler.reconcile(userID, previousImageID, p.ImageID, "transaction")
	return transaction, nil
}

// DeleteTransaction deletes a transaction, then attempts to delete its
// attached image. The transaction is fetched first to capture the image
// reference; the row delete alone cannot report it back.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(transactionID, userID); err != nil {
		return err
	}

	s.reconciler.cleanup(userID, transaction.ImageID, "transaction")
	return nil
}
