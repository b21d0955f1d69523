package service_test

import (
	"context"
	"testing"

	"github.com/ben/workshop-manager/internal/config"
	"github.com/ben/workshop-manager/internal/service"
	"github.com/ben/workshop-manager/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*service.AuthService, *testutil.TestDB) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := testDB.Repositories()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
	}
	return service.NewAuthService(repos.User, repos.Session, cfg), testDB
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, service.RegisterInput{
		Username: "jsmith",
		Name:     "John Smith",
		Email:    "john.smith@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotZero(t, result.User.ID)
	assert.Equal(t, "jsmith", result.User.Username)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.NotEqual(t, "password123", result.User.PasswordHash)
	assert.JSONEq(t, "[]", string(result.User.ShopSpaces))
}

func TestAuthService_Register_Duplicates(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, service.RegisterInput{
		Username: "jsmith",
		Email:    "john.smith@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, service.RegisterInput{
		Username: "jsmith",
		Email:    "different@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, service.ErrUsernameTaken)

	_, err = svc.Register(ctx, service.RegisterInput{
		Username: "different",
		Email:    "john.smith@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, service.RegisterInput{
		Username: "mjones",
		Email:    "mary.jones@example.com",
		Password: "password456",
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		identifier string
		password   string
		wantErr    error
	}{
		{name: "by username", identifier: "mjones", password: "password456"},
		{name: "by email", identifier: "mary.jones@example.com", password: "password456"},
		{name: "wrong password", identifier: "mjones", password: "nope", wantErr: service.ErrInvalidCredentials},
		{name: "unknown identifier", identifier: "ghost", password: "password456", wantErr: service.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Login(ctx, service.LoginInput{
				Identifier: tt.identifier,
				Password:   tt.password,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "mjones", result.User.Username)
			assert.NotEmpty(t, result.AccessToken)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, service.RegisterInput{
		Username: "bwilson",
		Email:    "bob.wilson@example.com",
		Password: "password789",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "bwilson", (*claims)["username"])
	assert.NotEmpty(t, (*claims)["sub"])

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestAuthService_RefreshTokens(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, service.RegisterInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, registered.User.ID, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The old refresh token was rotated out
	_, err = svc.RefreshTokens(ctx, registered.User.ID, registered.RefreshToken)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Logout(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, service.RegisterInput{
		Username: "dave",
		Email:    "dave@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, registered.User.ID))

	_, err = svc.RefreshTokens(ctx, registered.User.ID, registered.RefreshToken)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
