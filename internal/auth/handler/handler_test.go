package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"framtt_backend/internal/auth/password"
	"framtt_backend/internal/auth/repository"
	"framtt_backend/internal/auth/service"
	"framtt_backend/platform/apperr"
	"framtt_backend/platform/logger"
	"framtt_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAuthConfig struct{}

func (testAuthConfig) GetJWTSecret() string             { return "test-secret" }
func (testAuthConfig) GetAccessTokenTTL() time.Duration { return time.Hour }

type singleUser struct {
	user repository.User
}

func (s *singleUser) CreateUser(context.Context, repository.CreateUserParams) (repository.User, error) {
	return repository.User{}, apperr.Conflict("a user with this email already exists")
}

func (s *singleUser) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	if strings.EqualFold(email, s.user.Email) {
		return s.user, nil
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func (s *singleUser) GetUserByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	if id == s.user.ID {
		return s.user, nil
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	hash, err := password.Hash("Sales!pass1")
	require.NoError(t, err)

	repo := &singleUser{user: repository.User{ID: uuid.New(), Email: "sales@framtt.com", PasswordHash: hash, Role: "sales"}}
	h := New(service.New(repo, testAuthConfig{}, logger.Discard()), validator.New("US"))

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1/auth"))
	return engine
}

func postLogin(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestLoginSuccess(t *testing.T) {
	rec := postLogin(newEngine(t), `{"email":"sales@framtt.com","password":"Sales!pass1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AccessToken string `json:"accessToken"`
		ExpiresIn   int64  `json:"expiresIn"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, int64(3600), body.ExpiresIn)
}

func TestLoginRejections(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"email":`, http.StatusBadRequest},
		{"bad email", `{"email":"nope","password":"x"}`, http.StatusBadRequest},
		{"missing password", `{"email":"sales@framtt.com"}`, http.StatusBadRequest},
		{"wrong password", `{"email":"sales@framtt.com","password":"guess"}`, http.StatusUnauthorized},
		{"unknown user", `{"email":"ghost@framtt.com","password":"Sales!pass1"}`, http.StatusUnauthorized},
	}

	engine := newEngine(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postLogin(engine, tc.body)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
