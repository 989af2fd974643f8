package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/config"
	appErrors "github.com/Remy-Arinze/agora-backend-sub002/pkg/errors"
)

type mockUserRepo struct {
	users     map[string]*models.User
	lastLogin string
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string) error {
	m.lastLogin = id
	return nil
}

func newAuthFixture(t *testing.T, active bool) (*AuthService, *mockUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepo{users: map[string]*models.User{
		"admin@example.com": {
			ID:           "u1",
			SchoolID:     "sch-1",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			FullName:     "Admin",
			Role:         models.RoleSchoolAdmin,
			Active:       active,
		},
	}}
	svc := NewAuthService(repo, config.JWTConfig{Secret: "test-secret", Expiration: time.Hour}, nil, nil)
	return svc, repo
}

func TestAuthLoginSuccess(t *testing.T) {
	svc, repo := newAuthFixture(t, true)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "u1", res.User.ID)
	assert.Equal(t, "u1", repo.lastLogin)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "sch-1", claims.SchoolID)
	assert.Equal(t, models.RoleSchoolAdmin, claims.Role)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t, true)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t, true)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginInactiveAccount(t *testing.T) {
	svc, _ := newAuthFixture(t, false)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthValidateTokenGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t, true)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
