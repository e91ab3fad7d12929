package store

import (
	"testing"

	apperrors "shargea/internal/errors"
	"shargea/internal/models"
	"shargea/internal/testutil"
	"shargea/internal/uuid"
)

func TestFindByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		s := New[models.Category](db, apperrors.ErrCategoryNotFound, apperrors.ErrMediaAlreadyLinked)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestCategory(t, db, user.ID)

		got, err := s.FindByID(created.ID, user.ID)
		testutil.AssertNoError(t, err)
		if got.ID != created.ID {
			t.Errorf("expected ID %s, got %s", created.ID, got.ID)
		}
	})

	t.Run("missing_and_foreign_are_indistinguishable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		s := New[models.Category](db, apperrors.ErrCategoryNotFound, apperrors.ErrMediaAlreadyLinked)

		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, owner.ID)

		_, err := s.FindByID(uuid.New(), owner.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")

		_, err = s.FindByID(cat.ID, other.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestList(t *testing.T) {
	t.Run("scoped_to_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		s := New[models.Media](db, apperrors.ErrMediaNotFound, apperrors.ErrMediaAlreadyLinked)

		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		testutil.CreateTestMedia(t, db, user1.ID)
		testutil.CreateTestMedia(t, db, user2.ID)

		rows, err := s.List(user1.ID, "")
		testutil.AssertNoError(t, err)
		if len(rows) != 1 {
			t.Errorf("expected 1 row, got %d", len(rows))
		}
	})

	t.Run("search_does_not_leak_other_owners", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		s := New[models.Category](db, apperrors.ErrCategoryNotFound, apperrors.ErrMediaAlreadyLinked)

		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		// Both owners have a matching title; the search clause re-scopes
		// each branch of the OR to the requesting owner.
		mine := &models.Category{UserID: user1.ID, Title: "Travel"}
		theirs := &models.Category{UserID: user2.ID, Title: "Travel"}
		testutil.AssertNoError(t, db.Create(mine).Error)
		testutil.AssertNoError(t, db.Create(theirs).Error)

		rows, err := s.List(user1.ID, "Travel")
		testutil.AssertNoError(t, err)
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		if rows[0].UserID != user1.ID {
			t.Error("search returned a row owned by another user")
		}
	})
}

func TestCreate(t *testing.T) {
	t.Run("foreign_key_violation_maps_to_invalid_reference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		s := New[models.Category](db, apperrors.ErrCategoryNotFound, apperrors.ErrMediaAlreadyLinked)
		user := testutil.CreateTestUser(t, db)

		ghost := uuid.New()
		err := s.Create(&models.Category{UserID: user.ID, Title: "Orphan", ParentCategoryID: &ghost})
		testutil.AssertAppError(t, err, "INVALID_REFERENCE")
	})

	t.Run("unique_violation_maps_to_conflict_sentinel", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		s := New[models.Category](db, apperrors.ErrCategoryNotFound, apperrors.ErrMediaAlreadyLinked)
		user := testutil.CreateTestUser(t, db)
		img := testutil.CreateTestMedia(t, db, user.ID)

		err := s.Create(&models.Category{UserID: user.ID, Title: "First", ImageID: &img.ID})
		testutil.AssertNoError(t, err)

		err = s.Create(&models.Category{UserID: user.ID, Title: "Second", ImageID: &img.ID})
		testutil.AssertAppError(t, err, "MEDIA_ALREADY_LINKED")
	})
}

func TestUpdates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	s := New[models.Category](db, apperrors.ErrCategoryNotFound, apperrors.ErrMediaAlreadyLinked)
	user := testutil.CreateTestUser(t, db)
	cat := testutil.CreateTestCategory(t, db, user.ID)

	loaded, err := s.FindByID(cat.ID, user.ID)
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, s.Updates(loaded, map[string]interface{}{"title": "Renamed"}))

	if loaded.Title != "Renamed" {
		t.Errorf("expected the loaded row to reflect the update, got %s", loaded.Title)
	}
	if loaded.Version != 2 {
		t.Errorf("expected version bump to 2, got %d", loaded.Version)
	}

	var stored models.Category
	testutil.AssertNoError(t, db.First(&stored, "id = ?", cat.ID).Error)
	if stored.Title != "Renamed" {
		t.Errorf("expected stored title Renamed, got %s", stored.Title)
	}
}

func TestDelete(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		s := New[models.Media](db, apperrors.ErrMediaNotFound, apperrors.ErrMediaAlreadyLinked)
		user := testutil.CreateTestUser(t, db)
		media := testutil.CreateTestMedia(t, db, user.ID)

		testutil.AssertNoError(t, s.Delete(media.ID, user.ID))

		_, err := s.FindByID(media.ID, user.ID)
		testutil.AssertAppError(t, err, "MEDIA_NOT_FOUND")
	})

	t.Run("zero_rows_reports_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		s := New[models.Media](db, apperrors.ErrMediaNotFound, apperrors.ErrMediaAlreadyLinked)
		user := testutil.CreateTestUser(t, db)

		err := s.Delete(uuid.New(), user.ID)
		testutil.AssertAppError(t, err, "MEDIA_NOT_FOUND")
	})

	t.Run("wrong_owner_reports_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		s := New[models.Media](db, apperrors.ErrMediaNotFound, apperrors.ErrMediaAlreadyLinked)

		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		media := testutil.CreateTestMedia(t, db, owner.ID)

		err := s.Delete(media.ID, other.ID)
		testutil.AssertAppError(t, err, "MEDIA_NOT_FOUND")
	})

	t.Run("referenced_row_reports_still_referenced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		s := New[models.Media](db, apperrors.ErrMediaNotFound, apperrors.ErrMediaAlreadyLinked)
		user := testutil.CreateTestUser(t, db)

		img := testutil.CreateTestMedia(t, db, user.ID)
		cat := testutil.CreateTestCategory(t, db, user.ID)
		testutil.AssertNoError(t, db.Model(cat).Update("image_id", img.ID).Error)

		err := s.Delete(img.ID, user.ID)
		testutil.AssertAppError(t, err, "STILL_REFERENCED")
	})
}
