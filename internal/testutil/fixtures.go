package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"shargea/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a verified user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a verified user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Currency: models.CurrencyEUR,
		Verified: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestMedia creates an image media record for the given user.
func CreateTestMedia(t *testing.T, db *gorm.DB, userID string) *models.Media {
	t.Helper()

	n := nextID()
	media := &models.Media{
		UserID: userID,
		Title:  fmt.Sprintf("Test Media %d", n),
		URL:    fmt.Sprintf("https://cdn.test.com/media/%d.png", n),
		Type:   models.MediaTypeImage,
	}
	if err := db.Create(media).Error; err != nil {
		t.Fatalf("failed to create test media: %v", err)
	}
	return media
}

// CreateTestCategory creates a root category for the given user.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()
	return CreateTestCategoryWithParent(t, db, userID, nil)
}

// CreateTestCategoryWithParent creates a category under the given parent.
func CreateTestCategoryWithParent(t *testing.T, db *gorm.DB, userID string, parentID *string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID:           userID,
		Title:            fmt.Sprintf("Category %d", nextID()),
		ParentCategoryID: parentID,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction with the given signed amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, amount float64) *models.Transaction {
	t.Helper()

	now := time.Now()
	tx := &models.Transaction{
		UserID: userID,
		Title:  fmt.Sprintf("Transaction %d", nextID()),
		Amount: amount,
		Date:   &now,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
