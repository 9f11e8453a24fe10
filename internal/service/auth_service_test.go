package service_test

import (
	"context"
	"testing"

	"github.com/jesusfb/carmu-api/internal/config"
	"github.com/jesusfb/carmu-api/internal/dto"
	"github.com/jesusfb/carmu-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (service.AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func TestCreateUserAndLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Name:     "Carolina",
		Email:    "Carolina@Carmu.com",
		Password: "super-secret",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "carolina@carmu.com", created.Email, "email is normalized to lowercase")

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "carolina@carmu.com", Password: "super-secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Name: "Carolina", Email: "carolina@carmu.com", Password: "super-secret", Role: "user",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "carolina@carmu.com", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginDisabledUser(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Name: "Pedro", Email: "pedro@carmu.com", Password: "super-secret", Role: "user",
	})
	require.NoError(t, err)

	for _, u := range repo.users {
		if u.Email == created.Email {
			u.Enabled = false
		}
	}

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "pedro@carmu.com", Password: "super-secret"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestDuplicateEmailRejected(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Name: "Carolina", Email: "carolina@carmu.com", Password: "super-secret", Role: "user",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{
		Name: "Otra", Email: "CAROLINA@carmu.com", Password: "otra-clave", ConfirmPassword: "otra-clave",
	})
	var validation *service.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "email", validation.Field)
}

func TestRefreshIssuesNewTokenPair(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Name: "Carolina", Email: "carolina@carmu.com", Password: "super-secret", Role: "admin",
	})
	require.NoError(t, err)

	login, err := svc.Login(ctx, dto.LoginRequest{Email: "carolina@carmu.com", Password: "super-secret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}

func TestDisableUserHidesLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Name: "Carolina", Email: "carolina@carmu.com", Password: "super-secret", Role: "user",
	})
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	id := mustParseUUID(t, created.ID)
	require.NoError(t, svc.DisableUser(ctx, id))

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "carolina@carmu.com", Password: "super-secret"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
