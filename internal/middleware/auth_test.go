package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/damoang/angple-messaging/pkg/jwt"
	"github.com/gin-gonic/gin"
)

func newAuthRouter(mw gin.HandlerFunc) (*gin.Engine, *uint64) {
	gin.SetMode(gin.TestMode)
	var seenID uint64
	r := gin.New()
	r.Use(mw)
	r.GET("/test", func(c *gin.Context) {
		seenID = GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, &seenID
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	r, _ := newAuthRouter(JWTAuth(manager))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	r, _ := newAuthRouter(JWTAuth(manager))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_ValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.GenerateToken(42, "회원42", 2)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	r, seenID := newAuthRouter(JWTAuth(manager))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if *seenID != 42 {
		t.Errorf("expected userID 42, got %d", *seenID)
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	token, err := jwt.NewManager("other-secret", time.Hour).GenerateToken(42, "회원42", 2)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	manager := jwt.NewManager("test-secret", time.Hour)
	r, _ := newAuthRouter(JWTAuth(manager))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestOptionalJWTAuth_NoToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	r, seenID := newAuthRouter(OptionalJWTAuth(manager))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	// 토큰 없이도 통과하고 userID는 0
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if *seenID != 0 {
		t.Errorf("expected userID 0, got %d", *seenID)
	}
}

func TestOptionalJWTAuth_InvalidTokenStillPasses(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	r, seenID := newAuthRouter(OptionalJWTAuth(manager))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if *seenID != 0 {
		t.Errorf("expected userID 0, got %d", *seenID)
	}
}

func TestOptionalJWTAuth_ValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.GenerateToken(7, "회원7", 2)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	r, seenID := newAuthRouter(OptionalJWTAuth(manager))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if *seenID != 7 {
		t.Errorf("expected userID 7, got %d", *seenID)
	}
}
