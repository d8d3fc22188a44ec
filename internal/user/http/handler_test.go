package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdcampus/campus-booking-backend/internal/auth"
	"github.com/fsdcampus/campus-booking-backend/internal/user"
)

// stubService returns canned users and records the last lookup.
type stubService struct {
	user   *user.User
	err    error
	lastID string
}

func (s *stubService) Register(_ context.Context, _ user.RegisterRequest) (*user.User, error) {
	return s.user, s.err
}

func (s *stubService) Login(_ context.Context, _, _ string) (*user.User, error) {
	return s.user, s.err
}

func (s *stubService) GetByID(_ context.Context, id string) (*user.User, error) {
	s.lastID = id
	return s.user, s.err
}

var jwtManager = auth.NewJWTManager("test-secret", time.Minute)

func newTestRouter(svc user.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	passthrough := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/api"), NewHandler(svc, jwtManager), auth.AuthRequired(jwtManager), passthrough)
	return r
}

func doRequest(r *gin.Engine, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleUser() *user.User {
	return &user.User{
		ID:        uuid.NewString(),
		Name:      "Alex Lin",
		Email:     "alex@campus.edu",
		Role:      auth.RoleStudent,
		Status:    user.StatusActive,
		CreatedAt: time.Now().UTC(),
	}
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &stubService{user: sampleUser()}
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodPost, "/api/auth/register", RegisterRequest{
			Name:     "Alex Lin",
			Email:    "alex@campus.edu",
			Password: "correct-horse",
			Role:     "student",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, svc.user.ID, resp.ID)
		assert.Equal(t, "STUDENT", resp.Role)
	})

	t.Run("binding rejects bad payloads", func(t *testing.T) {
		r := newTestRouter(&stubService{})

		cases := []RegisterRequest{
			{Name: "A", Email: "not-an-email", Password: "correct-horse", Role: "student"},
			{Name: "A", Email: "a@b.c", Password: "short", Role: "student"},
			{Email: "a@b.c", Password: "correct-horse", Role: "student"},
		}
		for _, payload := range cases {
			w := doRequest(r, http.MethodPost, "/api/auth/register", payload, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		r := newTestRouter(&stubService{err: user.ErrEmailAlreadyUsed})
		w := doRequest(r, http.MethodPost, "/api/auth/register", RegisterRequest{
			Name:     "Alex Lin",
			Email:    "alex@campus.edu",
			Password: "correct-horse",
			Role:     "student",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("returns a usable token", func(t *testing.T) {
		svc := &stubService{user: sampleUser()}
		r := newTestRouter(svc)

		w := doRequest(r, http.MethodPost, "/api/auth/login", LoginRequest{
			Email:    "alex@campus.edu",
			Password: "correct-horse",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "STUDENT", resp.Role)
		assert.Equal(t, "Alex Lin", resp.Name)

		claims, err := jwtManager.ParseAndValidate(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, svc.user.ID, claims.UserID)
		assert.Equal(t, "STUDENT", claims.Role)
	})

	t.Run("bad credentials", func(t *testing.T) {
		r := newTestRouter(&stubService{err: user.ErrInvalidCredentials})
		w := doRequest(r, http.MethodPost, "/api/auth/login", LoginRequest{
			Email:    "alex@campus.edu",
			Password: "wrong-password",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("locked account", func(t *testing.T) {
		r := newTestRouter(&stubService{err: user.ErrAccountLocked})
		w := doRequest(r, http.MethodPost, "/api/auth/login", LoginRequest{
			Email:    "alex@campus.edu",
			Password: "correct-horse",
		}, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMeEndpoint(t *testing.T) {
	t.Run("returns the token holder's account", func(t *testing.T) {
		svc := &stubService{user: sampleUser()}
		r := newTestRouter(svc)

		token, err := jwtManager.GenerateAccessToken(svc.user.ID, svc.user.Email, svc.user.Role)
		require.NoError(t, err)

		w := doRequest(r, http.MethodGet, "/api/auth/me", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, svc.user.ID, resp.ID)
		assert.Equal(t, svc.user.Email, resp.Email)

		// The lookup uses the token subject, not anything client-supplied.
		assert.Equal(t, svc.user.ID, svc.lastID)
	})

	t.Run("requires a token", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := doRequest(r, http.MethodGet, "/api/auth/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deleted account surfaces not found", func(t *testing.T) {
		r := newTestRouter(&stubService{err: user.ErrNotFound})
		token, err := jwtManager.GenerateAccessToken(uuid.NewString(), "gone@campus.edu", auth.RoleStudent)
		require.NoError(t, err)

		w := doRequest(r, http.MethodGet, "/api/auth/me", nil, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
