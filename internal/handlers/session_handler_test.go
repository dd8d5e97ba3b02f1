package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expenis/internal/errors"
	"expenis/internal/models"
	"expenis/internal/services"
	"expenis/internal/validator"
)

// --- mock services ---

type mockSessionService struct {
	createSessionFn  func() (string, error)
	confirmSessionFn func(userID int64, sessionID string) (*models.Session, error)
	getSessionFn     func(sessionID string) (*models.Session, error)
	sweepFn          func(maxAge time.Duration) (int64, error)
}

func (m *mockSessionService) CreateSession() (string, error) {
	if m.createSessionFn != nil {
		return m.createSessionFn()
	}
	return "test-session-id", nil
}

func (m *mockSessionService) ConfirmSession(userID int64, sessionID string) (*models.Session, error) {
	if m.confirmSessionFn != nil {
		return m.confirmSessionFn(userID, sessionID)
	}
	return &models.Session{ID: sessionID, Status: models.SessionStatusConfirmed, UserID: &userID}, nil
}

func (m *mockSessionService) GetSession(sessionID string) (*models.Session, error) {
	if m.getSessionFn != nil {
		return m.getSessionFn(sessionID)
	}
	return &models.Session{ID: sessionID, Status: models.SessionStatusPending}, nil
}

func (m *mockSessionService) Sweep(maxAge time.Duration) (int64, error) {
	if m.sweepFn != nil {
		return m.sweepFn(maxAge)
	}
	return 0, nil
}

var _ services.SessionServicer = (*mockSessionService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupSessionRouter(handler *SessionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/create-session", handler.CreateSession)
	r.GET("/api/auth/:session_id", handler.Auth)
	return r
}

func injectUserID(uid int64) gin.HandlerFunc {
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

func TestSessionHandler_CreateSession(t *testing.T) {
	t.Run("returns id and qr data url", func(t *testing.T) {
		handler := NewSessionHandler(&mockSessionService{
			createSessionFn: func() (string, error) { return "abc-123", nil },
		})
		r := setupSessionRouter(handler)

		rec := doRequest(r, "POST", "/api/create-session", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["session_id"] != "abc-123" {
			t.Errorf("expected session_id abc-123, got %v", result["session_id"])
		}
		qr, _ := result["qr_code"].(string)
		if !strings.HasPrefix(qr, "data:image/png;base64,") {
			t.Errorf("expected PNG data URL, got %.40s", qr)
		}
	})
}

func TestSessionHandler_Auth(t *testing.T) {
	t.Run("pending session has no cookie", func(t *testing.T) {
		handler := NewSessionHandler(&mockSessionService{})
		r := setupSessionRouter(handler)

		rec := doRequest(r, "GET", "/api/auth/abc-123", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["status"] != "pending" {
			t.Errorf("expected status pending, got %v", result["status"])
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Error("expected no cookie for a pending session")
		}
	})

	t.Run("confirmed session sets auth cookie", func(t *testing.T) {
		userID := int64(42)
		handler := NewSessionHandler(&mockSessionService{
			getSessionFn: func(sessionID string) (*models.Session, error) {
				return &models.Session{ID: sessionID, Status: models.SessionStatusConfirmed, UserID: &userID}, nil
			},
		})
		r := setupSessionRouter(handler)

		rec := doRequest(r, "GET", "/api/auth/abc-123", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["status"] != "confirmed" {
			t.Errorf("expected status confirmed, got %v", result["status"])
		}

		cookies := rec.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("expected 1 cookie, got %d", len(cookies))
		}
		cookie := cookies[0]
		if cookie.Value == "" {
			t.Error("expected non-empty token in cookie")
		}
		if !cookie.HttpOnly {
			t.Error("expected HttpOnly cookie")
		}
		if cookie.SameSite != http.SameSiteStrictMode {
			t.Errorf("expected SameSite=Strict, got %v", cookie.SameSite)
		}
	})

	t.Run("returns 404 for unknown session", func(t *testing.T) {
		handler := NewSessionHandler(&mockSessionService{
			getSessionFn: func(sessionID string) (*models.Session, error) {
				return nil, apperrors.WithMessage(apperrors.ErrSessionNotFound, "session "+sessionID+" not found")
			},
		})
		r := setupSessionRouter(handler)

		rec := doRequest(r, "GET", "/api/auth/no-such", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "SESSION_NOT_FOUND")
	})
}
