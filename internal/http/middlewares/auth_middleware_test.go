package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danmwangi/schoolhub/internal/auth"
	"github.com/danmwangi/schoolhub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(jwt middlewares.TokenVerifier) *gin.Engine {
	r := gin.New()

	mw := middlewares.NewAuthMiddleware(jwt)

	r.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		id, _ := middlewares.UserIDFromContext(c)
		ut, _ := middlewares.UserTypeFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "user_type": ut})
	})

	return r
}

func TestRequireAuth(t *testing.T) {
	manager := auth.NewManager("test-secret", 2*time.Minute)

	valid, err := manager.GenerateAccessToken("u-1", "anna@example.com", "NA")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	expiredManager := auth.NewManager("test-secret", -time.Minute)
	expired, _ := expiredManager.GenerateAccessToken("u-1", "anna@example.com", "NA")

	r := protectedRouter(manager)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)

			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRequireAuth_IdentityOnContext(t *testing.T) {
	manager := auth.NewManager("test-secret", 2*time.Minute)

	token, err := manager.GenerateAccessToken("u-42", "bob@example.com", "teacher")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	r := protectedRouter(manager)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	if !strings.Contains(w.Body.String(), `"user_id":"u-42"`) {
		t.Fatalf("body %s missing user_id", w.Body.String())
	}

	if !strings.Contains(w.Body.String(), `"user_type":"teacher"`) {
		t.Fatalf("body %s missing user_type", w.Body.String())
	}
}
