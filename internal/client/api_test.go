package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danmwangi/schoolhub/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_LoginParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "anna@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Login successful","token":"tok-1","user":{"id":"u-1","username":"anna","email":"anna@example.com","user_type":"NA"}}`))
	}))
	defer srv.Close()

	api := client.NewAPI(srv.URL, nil)

	resp, err := api.Login(context.Background(), "anna@example.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, "tok-1", resp.Token)
	assert.Equal(t, "anna", resp.User.Username)
	assert.Equal(t, "NA", resp.User.UserType)
}

func TestAPI_ListStudentsSendsBearerToken(t *testing.T) {
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/api/student/all", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"s-1","firstname":"Anna","lastname":"Otieno","grade":"4","contact":"0712345678"}],"totalPages":3}`))
	}))
	defer srv.Close()

	api := client.NewAPI(srv.URL, func() string { return "tok-9" })

	page, err := api.ListStudents(context.Background(), 2, 10)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-9", gotAuth)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Anna", page.Data[0].Firstname)
}

func TestAPI_NonOKBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized","message":"Invalid or expired access token"}`))
	}))
	defer srv.Close()

	api := client.NewAPI(srv.URL, nil)

	_, err := api.ListStudents(context.Background(), 1, 10)
	require.Error(t, err)

	var statusErr *client.StatusError
	require.ErrorAs(t, err, &statusErr)

	assert.Equal(t, http.StatusUnauthorized, statusErr.Status)
	assert.Equal(t, "Invalid or expired access token", statusErr.Message)
}
