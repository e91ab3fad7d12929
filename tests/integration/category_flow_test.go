package integration

import (
	"fmt"
	"net/http"
	"testing"
)

// createCategory is a helper that creates a category and returns its ID.
func createCategory(t *testing.T, app *testApp, token, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/categories", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["category"].(map[string]interface{})["id"].(string)
}

func TestCategoryTreeFlow(t *testing.T) {
	app := setupApp(t, false)
	token := app.signupUser(t, "tree@example.com", "password123")

	foodID := createCategory(t, app, token, `{"title":"Food"}`)
	snacksID := createCategory(t, app, token,
		fmt.Sprintf(`{"title":"Snacks","parent_category_id":%q}`, foodID))

	t.Run("child lists its parent", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/categories/"+snacksID, "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		cat := parseJSON(t, rec)["category"].(map[string]interface{})
		if cat["parent_category_id"] != foodID {
			t.Errorf("expected parent %s, got %v", foodID, cat["parent_category_id"])
		}
	})

	t.Run("category cannot be its own parent", func(t *testing.T) {
		body := fmt.Sprintf(`{"parent_category_id":%q}`, foodID)
		rec := app.request("PATCH", "/api/v1/categories/"+foodID, body, token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "CIRCULAR_REFERENCE" {
			t.Errorf("expected CIRCULAR_REFERENCE, got %s", code)
		}
	})

	t.Run("reparenting onto a descendant is rejected", func(t *testing.T) {
		body := fmt.Sprintf(`{"parent_category_id":%q}`, snacksID)
		rec := app.request("PATCH", "/api/v1/categories/"+foodID, body, token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "CIRCULAR_REFERENCE" {
			t.Errorf("expected CIRCULAR_REFERENCE, got %s", code)
		}
	})

	t.Run("search filters by title and description", func(t *testing.T) {
		createCategory(t, app, token, `{"title":"Travel","description":"trips abroad"}`)

		rec := app.request("GET", "/api/v1/categories?search=Food", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		categories := parseJSON(t, rec)["categories"].([]interface{})
		if len(categories) != 1 {
			t.Fatalf("expected 1 match for 'Food', got %d", len(categories))
		}

		rec = app.request("GET", "/api/v1/categories?search=abroad", "", token)
		categories = parseJSON(t, rec)["categories"].([]interface{})
		if len(categories) != 1 {
			t.Fatalf("expected 1 match for 'abroad' via description, got %d", len(categories))
		}
	})

	t.Run("parent with children cannot be deleted", func(t *testing.T) {
		rec := app.request("DELETE", "/api/v1/categories/"+foodID, "", token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "STILL_REFERENCED" {
			t.Errorf("expected STILL_REFERENCED, got %s", code)
		}
	})

	t.Run("deleting leaf then parent succeeds", func(t *testing.T) {
		rec := app.request("DELETE", "/api/v1/categories/"+snacksID, "", token)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}
		rec = app.request("DELETE", "/api/v1/categories/"+foodID, "", token)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestCategoryOwnershipIsolation(t *testing.T) {
	app := setupApp(t, false)
	aliceToken := app.signupUser(t, "alice@example.com", "password123")
	bobToken := app.signupUser(t, "bob@example.com", "password123")

	aliceCatID := createCategory(t, app, aliceToken, `{"title":"Groceries"}`)

	t.Run("other users cannot read the category", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/categories/"+aliceCatID, "", bobToken)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("other users cannot parent onto the category", func(t *testing.T) {
		body := fmt.Sprintf(`{"title":"Sneaky","parent_category_id":%q}`, aliceCatID)
		rec := app.request("POST", "/api/v1/categories", body, bobToken)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		if code := errorCode(t, rec); code != "INVALID_REFERENCE" {
			t.Errorf("expected INVALID_REFERENCE, got %s", code)
		}
	})

	t.Run("listing only returns own categories", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/categories", "", bobToken)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		categories := parseJSON(t, rec)["categories"].([]interface{})
		if len(categories) != 0 {
			t.Errorf("expected empty list for bob, got %d categories", len(categories))
		}
	})
}
