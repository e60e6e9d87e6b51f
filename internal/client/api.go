package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/danmwangi/schoolhub/internal/domain/student"
	"github.com/danmwangi/schoolhub/internal/domain/user"
)

// StatusError is any non-2xx answer from the API. The session controller
// treats every one of them as a reason to drop the session.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

type API struct {
	baseURL string
	httpc   *http.Client
	token   func() string
}

// NewAPI builds a client for baseURL. token is consulted per request so a
// re-login mid-session is picked up without rebuilding the client.
func NewAPI(baseURL string, token func() string) *API {
	return &API{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		token:   token,
	}
}

type AuthResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    user.User `json:"user"`
}

type StudentPage struct {
	Data       []student.Student `json:"data"`
	TotalPages int               `json:"totalPages"`
}

func (a *API) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse

	err := a.postJSON(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)

	return out, err
}

func (a *API) Signup(ctx context.Context, username, password, email, userType string) (AuthResponse, error) {
	body := map[string]string{
		"username": username,
		"password": password,
		"email":    email,
	}

	if userType != "" {
		body["user_type"] = userType
	}

	var out AuthResponse

	err := a.postJSON(ctx, "/api/auth/signup", body, &out)

	return out, err
}

func (a *API) ListStudents(ctx context.Context, page, limit int) (StudentPage, error) {
	var out StudentPage

	path := fmt.Sprintf("/api/student/all?page=%d&limit=%d", page, limit)

	err := a.getJSON(ctx, path, &out)

	return out, err
}

func (a *API) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	raw, err := json.Marshal(body)

	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(raw))

	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	return a.do(req, out)
}

func (a *API) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)

	if err != nil {
		return err
	}

	return a.do(req, out)
}

func (a *API) do(req *http.Request, out interface{}) error {
	if a.token != nil {
		if tok := a.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := a.httpc.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)

	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""

		var e struct {
			Message string `json:"message"`
		}

		if json.Unmarshal(raw, &e) == nil {
			msg = e.Message
		}

		return &StatusError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(raw, out)
}
