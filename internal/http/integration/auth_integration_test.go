package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/danmwangi/schoolhub/internal/config"
	apphttp "github.com/danmwangi/schoolhub/internal/http"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func testConfigAuth() config.Config {
	return config.Config{
		Env:                 "test",
		Port:                0,
		JWTSecret:           "test-secret-key",
		JWTAccessTTLMinutes: 2,
		CORSAllowedOrigins:  []string{"http://localhost:3000"},
		MaxBodyBytes:        1 << 20,
	}
}

// needs a real database; set TEST_DB_DSN to run
func setupAuthTestRouter(t *testing.T) (*gin.Engine, *pgxpool.Pool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := os.Getenv("TEST_DB_DSN")

	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping integration test")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)

	if err != nil {
		t.Fatalf("Failed to create pgx pool: %v", err)
	}

	t.Cleanup(pool.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	router := apphttp.NewRouter(logger, pool, testConfigAuth())

	return router, pool
}

func resetAuthDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		TRUNCATE users, students
		RESTART IDENTITY CASCADE
	`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func doRequest(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))

	if method == http.MethodPost || method == http.MethodPut {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

type authBody struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		UserType string `json:"user_type"`
	} `json:"user"`
}

func TestSignupLoginListFlow(t *testing.T) {
	router, pool := setupAuthTestRouter(t)
	resetAuthDB(t, pool)

	// signup
	w := doRequest(router, http.MethodPost, "/api/auth/signup",
		`{"username":"anna","email":"anna@example.com","password":"correct-horse"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("signup status = %d, body %s", w.Code, w.Body.String())
	}

	var signedUp authBody

	if err := json.Unmarshal(w.Body.Bytes(), &signedUp); err != nil {
		t.Fatalf("signup body: %v", err)
	}

	if signedUp.Token == "" || signedUp.User.ID == "" {
		t.Fatalf("signup body incomplete: %s", w.Body.String())
	}

	if signedUp.User.UserType != "NA" {
		t.Fatalf("user_type = %q, want NA", signedUp.User.UserType)
	}

	// duplicate signup must fail exactly the same way every time
	for i := 0; i < 2; i++ {
		w = doRequest(router, http.MethodPost, "/api/auth/signup",
			`{"username":"anna2","email":"anna@example.com","password":"other"}`, "")

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("duplicate signup status = %d, body %s", w.Code, w.Body.String())
		}
	}

	// login with the same credentials
	w = doRequest(router, http.MethodPost, "/api/auth/login",
		`{"email":"anna@example.com","password":"correct-horse"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}

	var loggedIn authBody
	_ = json.Unmarshal(w.Body.Bytes(), &loggedIn)

	if loggedIn.Token == "" {
		t.Fatalf("login returned no token: %s", w.Body.String())
	}

	// wrong password must not log in
	w = doRequest(router, http.MethodPost, "/api/auth/login",
		`{"email":"anna@example.com","password":"wrong"}`, "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", w.Code)
	}

	// the token opens the listing
	w = doRequest(router, http.MethodGet, "/api/student/all?page=1&limit=10", "", loggedIn.Token)

	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestStudentPaginationAgainstDB(t *testing.T) {
	router, pool := setupAuthTestRouter(t)
	resetAuthDB(t, pool)

	// an account to list with
	w := doRequest(router, http.MethodPost, "/api/auth/signup",
		`{"username":"lister","email":"lister@example.com","password":"pw123"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("signup status = %d", w.Code)
	}

	var signedUp authBody
	_ = json.Unmarshal(w.Body.Bytes(), &signedUp)

	for i := 0; i < 23; i++ {
		body := fmt.Sprintf(`{"firstname":"First%02d","lastname":"Last%02d","grade":"4","contact":"0700%06d"}`, i, i, i)

		w = doRequest(router, http.MethodPost, "/api/student", body, signedUp.Token)

		if w.Code != http.StatusCreated {
			t.Fatalf("create %d status = %d, body %s", i, w.Code, w.Body.String())
		}
	}

	w = doRequest(router, http.MethodGet, "/api/student/all?page=3&limit=10", "", signedUp.Token)

	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}

	var page struct {
		Data       []json.RawMessage `json:"data"`
		TotalPages int               `json:"totalPages"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("list body: %v", err)
	}

	if page.TotalPages != 3 {
		t.Fatalf("totalPages = %d, want 3", page.TotalPages)
	}

	if len(page.Data) != 3 {
		t.Fatalf("page 3 has %d rows, want 3", len(page.Data))
	}
}
