package rest_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vlnch/anonbox/api"
	"github.com/vlnch/anonbox/blob/memory"
	"github.com/vlnch/anonbox/blob/mocks"
	"github.com/vlnch/anonbox/models"
	"github.com/vlnch/anonbox/store"
)

// Helper to build the full route table over an in-memory document store
func setupMux(t *testing.T) *http.ServeMux {
	t.Helper()
	documentStore := store.NewStore(memory.NewMemoryTransport())
	anonboxAPI := api.NewAnonboxAPI(documentStore)

	mux := http.NewServeMux()
	anonboxAPI.RegisterRoutes(mux)
	return mux
}

func doJSON(mux *http.ServeMux, method, path, body, authHeader string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestEndToEnd_RegisterSendInbox(t *testing.T) {
	mux := setupMux(t)

	// Register alice and bob
	rec := doJSON(mux, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"secret1"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var authResp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &authResp))
	assert.Equal(t, "alice", authResp.Token)
	assert.Equal(t, "alice", authResp.User.Username)

	rec = doJSON(mux, http.MethodPost, "/api/auth/register", `{"username":"bob","password":"secret2"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Bob sends alice a message
	rec = doJSON(mux, http.MethodPost, "/api/messages/alice", `{"content":"hi alice","category":"Love"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	// Alice's inbox holds exactly that message
	rec = doJSON(mux, http.MethodGet, "/api/messages", "", "alice")
	assert.Equal(t, http.StatusOK, rec.Code)

	var inbox []models.Message
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inbox))
	assert.Len(t, inbox, 1)
	assert.Equal(t, "hi alice", inbox[0].Content)
	assert.Equal(t, "Love", inbox[0].Category)
	assert.Equal(t, "alice", inbox[0].Recipient)
	assert.NotEmpty(t, inbox[0].Id)

	// Bob's inbox is empty
	rec = doJSON(mux, http.MethodGet, "/api/messages", "", "bob")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRegister_MissingFields(t *testing.T) {
	mux := setupMux(t)

	rec := doJSON(mux, http.MethodPost, "/api/auth/register", `{"username":"alice"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing fields"}`, rec.Body.String())
}

func TestRegister_DuplicateUser(t *testing.T) {
	mux := setupMux(t)

	rec := doJSON(mux, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"secret1"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(mux, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"other"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"User already exists"}`, rec.Body.String())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mux := setupMux(t)

	rec := doJSON(mux, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"secret1"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(mux, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())

	// Unknown user gets the same response shape and status
	rec = doJSON(mux, http.MethodPost, "/api/auth/login", `{"username":"nobody","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
}

func TestLogin_MissingFields(t *testing.T) {
	mux := setupMux(t)

	rec := doJSON(mux, http.MethodPost, "/api/auth/login", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing fields"}`, rec.Body.String())
}

func TestSubmit_EmptyContent(t *testing.T) {
	mux := setupMux(t)

	rec := doJSON(mux, http.MethodPost, "/api/messages/alice", `{"content":""}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Empty message"}`, rec.Body.String())
}

func TestInbox_MissingAuthHeader(t *testing.T) {
	mux := setupMux(t)

	rec := doJSON(mux, http.MethodGet, "/api/messages", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestStoreFailure_MapsToGenericErrors(t *testing.T) {
	mockTransport := new(mocks.MockTransport)
	mockTransport.On("Get", mock.Anything).Return(nil, errors.New("network down"))
	mockTransport.On("Patch", mock.Anything, mock.Anything).Return(errors.New("network down"))

	anonboxAPI := api.NewAnonboxAPI(store.NewStore(mockTransport))
	mux := http.NewServeMux()
	anonboxAPI.RegisterRoutes(mux)

	rec := doJSON(mux, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"secret1"}`, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Registration failed"}`, rec.Body.String())

	rec = doJSON(mux, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"secret1"}`, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Login failed"}`, rec.Body.String())

	rec = doJSON(mux, http.MethodPost, "/api/messages/alice", `{"content":"hi"}`, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Could not send message"}`, rec.Body.String())

	rec = doJSON(mux, http.MethodGet, "/api/messages", "", "alice")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Fetch failed"}`, rec.Body.String())
}

func TestSubmit_RateLimited(t *testing.T) {
	mux := setupMux(t)

	limited := false
	for i := 0; i < 10; i++ {
		rec := doJSON(mux, http.MethodPost, "/api/messages/alice", `{"content":"spam"}`, "")
		if rec.Code == http.StatusTooManyRequests {
			limited = true
		}
	}
	assert.True(t, limited, "burst of submits from one address should hit the rate limit")
}

func TestHealth(t *testing.T) {
	mux := setupMux(t)

	rec := doJSON(mux, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	mux := setupMux(t)
	handler := api.WithCORS(mux, "https://anonbox.example")

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://anonbox.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
