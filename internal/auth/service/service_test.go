package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"framtt_backend/internal/auth/password"
	"framtt_backend/internal/auth/repository"
	"framtt_backend/internal/auth/transport"
	"framtt_backend/platform/apperr"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/logger"

	"github.com/google/uuid"
)

type testAuthConfig struct{}

func (testAuthConfig) GetJWTSecret() string             { return "test-secret" }
func (testAuthConfig) GetAccessTokenTTL() time.Duration { return 2 * time.Hour }

type memoryUsers struct {
	byEmail map[string]repository.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: map[string]repository.User{}}
}

func (m *memoryUsers) CreateUser(_ context.Context, p repository.CreateUserParams) (repository.User, error) {
	key := strings.ToLower(p.Email)
	if _, exists := m.byEmail[key]; exists {
		return repository.User{}, apperr.Conflict("a user with this email already exists")
	}
	u := repository.User{ID: uuid.New(), Email: key, PasswordHash: p.PasswordHash, Name: p.Name, Role: p.Role, CreatedAt: time.Now()}
	m.byEmail[key] = u
	return u, nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	u, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (m *memoryUsers) GetUserByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func seededService(t *testing.T) (*Service, repository.User) {
	t.Helper()
	repo := newMemoryUsers()
	svc := New(repo, testAuthConfig{}, logger.Discard())
	profile, err := svc.CreateUser(context.Background(), transport.CreateUserRequest{
		Email:    " Admin@Framtt.com ",
		Password: "Sup3r!secret",
		Role:     httpkit.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	user, _ := repo.GetUserByID(context.Background(), profile.ID)
	return svc, user
}

func TestCreateUserHashesPassword(t *testing.T) {
	_, user := seededService(t)
	if user.Email != "admin@framtt.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "Sup3r!secret" {
		t.Fatal("expected the stored password to be hashed")
	}
	if err := password.Compare(user.PasswordHash, "Sup3r!secret"); err != nil {
		t.Fatalf("expected stored hash to verify, got %v", err)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, user := seededService(t)

	resp, err := svc.Login(context.Background(), transport.LoginRequest{Email: "ADMIN@framtt.com", Password: "Sup3r!secret"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.ExpiresIn != int64((2 * time.Hour).Seconds()) {
		t.Fatalf("unexpected expiresIn %d", resp.ExpiresIn)
	}
	if resp.TokenType != "Bearer" {
		t.Fatalf("unexpected token type %q", resp.TokenType)
	}

	claims, err := httpkit.ParseAccessToken(resp.AccessToken, testAuthConfig{})
	if err != nil {
		t.Fatalf("issued token did not parse: %v", err)
	}
	if claims["sub"] != user.ID.String() {
		t.Fatalf("expected subject %s, got %v", user.ID, claims["sub"])
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _ := seededService(t)

	cases := []transport.LoginRequest{
		{Email: "admin@framtt.com", Password: "wrong-password"},
		{Email: "nobody@framtt.com", Password: "Sup3r!secret"},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		if !apperr.Is(err, apperr.KindUnauthorized) {
			t.Fatalf("expected unauthorized for %s, got %v", req.Email, err)
		}
		if err.Error() != msgInvalidCredentials {
			t.Fatalf("expected uniform message, got %q", err.Error())
		}
	}
}

func TestCreateUserRejectsDuplicate(t *testing.T) {
	svc, _ := seededService(t)
	_, err := svc.CreateUser(context.Background(), transport.CreateUserRequest{
		Email:    "admin@framtt.com",
		Password: "An0ther!pass",
		Role:     httpkit.RoleSales,
	})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMeReturnsProfile(t *testing.T) {
	svc, user := seededService(t)
	profile, err := svc.Me(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if profile.Role != httpkit.RoleAdmin || profile.Email != user.Email {
		t.Fatalf("unexpected profile %+v", profile)
	}
	if _, err := svc.Me(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
