package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "shargea/internal/errors"
	"shargea/internal/models"
	"shargea/internal/services"
	"shargea/internal/validator"
)

// --- mock services ---

type mockAuthService struct {
	signUpFn      func(email, password string, currency models.Currency) (*models.User, error)
	signInFn      func(email, password, ip string) (string, *models.User, error)
	verifyEmailFn func(token string) error
}

func (m *mockAuthService) SignUp(_ context.Context, email, password string, currency models.Currency) (*models.User, error) {
	if m.signUpFn != nil {
		return m.signUpFn(email, password, currency)
	}
	return &models.User{}, nil
}

func (m *mockAuthService) SignIn(_ context.Context, email, password, ip string) (string, *models.User, error) {
	if m.signInFn != nil {
		return m.signInFn(email, password, ip)
	}
	return "token", &models.User{}, nil
}

func (m *mockAuthService) VerifyEmail(_ context.Context, token string) error {
	if m.verifyEmailFn != nil {
		return m.verifyEmailFn(token)
	}
	return nil
}

var _ services.AuthServicer = (*mockAuthService)(nil)

type mockAuditService struct{}

func (m *mockAuditService) Log(_, _, _, _, _ string, _ map[string]interface{}) {}

var _ services.AuditServicer = (*mockAuditService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

const testUserID = "0195ef12-3a5b-7c8d-9e0f-123456789abc"

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/signup", handler.SignUp)
	r.POST("/auth/signin", handler.SignIn)
	r.GET("/auth/email/verify/:token", handler.VerifyEmail)
	return r
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAuthHandler_SignUp(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		authSvc := &mockAuthService{
			signUpFn: func(email, _ string, currency models.Currency) (*models.User, error) {
				return &models.User{
					Base:     models.Base{ID: testUserID},
					Email:    email,
					Currency: currency,
				}, nil
			},
		}
		handler := NewAuthHandler(authSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signup",
			`{"email":"test@example.com","password":"password123","currency":"USD"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		user := result["user"].(map[string]interface{})
		if user["email"] != "test@example.com" {
			t.Errorf("expected email test@example.com, got %v", user["email"])
		}
		if user["currency"] != "USD" {
			t.Errorf("expected currency USD, got %v", user["currency"])
		}
	})

	t.Run("returns 400 on missing email", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signup", `{"password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signup", `{"email":"test@example.com","password":"short"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unsupported currency", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signup",
			`{"email":"test@example.com","password":"password123","currency":"JPY"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		authSvc := &mockAuthService{
			signUpFn: func(_, _ string, _ models.Currency) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		handler := NewAuthHandler(authSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signup",
			`{"email":"taken@example.com","password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})
}

func TestAuthHandler_SignIn(t *testing.T) {
	t.Run("returns 200 with access token", func(t *testing.T) {
		authSvc := &mockAuthService{
			signInFn: func(email, _, _ string) (string, *models.User, error) {
				return "signed.jwt.token", &models.User{Base: models.Base{ID: testUserID}, Email: email}, nil
			},
		}
		handler := NewAuthHandler(authSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signin",
			`{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["access_token"] != "signed.jwt.token" {
			t.Errorf("expected access token, got %v", result["access_token"])
		}
	})

	t.Run("returns 401 on invalid credentials", func(t *testing.T) {
		authSvc := &mockAuthService{
			signInFn: func(_, _, _ string) (string, *models.User, error) {
				return "", nil, apperrors.ErrInvalidCredentials
			},
		}
		handler := NewAuthHandler(authSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signin",
			`{"email":"test@example.com","password":"wrong1234"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 401 on unverified email", func(t *testing.T) {
		authSvc := &mockAuthService{
			signInFn: func(_, _, _ string) (string, *models.User, error) {
				return "", nil, apperrors.ErrEmailNotVerified
			},
		}
		handler := NewAuthHandler(authSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signin",
			`{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "EMAIL_NOT_VERIFIED")
	})

	t.Run("returns 400 on malformed payload", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signin", `{"email":"not-an-email"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_VerifyEmail(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		verified := ""
		authSvc := &mockAuthService{
			verifyEmailFn: func(token string) error {
				verified = token
				return nil
			},
		}
		handler := NewAuthHandler(authSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/auth/email/verify/abc123", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if verified != "abc123" {
			t.Errorf("expected token abc123 passed through, got %q", verified)
		}
	})

	t.Run("returns 404 on unknown token", func(t *testing.T) {
		authSvc := &mockAuthService{
			verifyEmailFn: func(string) error { return apperrors.ErrTokenNotFound },
		}
		handler := NewAuthHandler(authSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/auth/email/verify/unknown", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TOKEN_NOT_FOUND")
	})
}
