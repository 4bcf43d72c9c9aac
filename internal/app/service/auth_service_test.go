package service

import (
	"testing"
	"time"

	"github.com/HovVathana/shoppink-backend/config"
	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(gdb *gorm.DB) AuthService {
	return NewAuthService(repository.NewUserRepository(gdb), &config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	})
}

func TestRegisterAndLogin(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAuthService(gdb)

	user, tokens, err := svc.Register(RegisterInput{
		Email:    "sokha@example.com",
		Password: "supersecret",
		Name:     "Sokha",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	_, loginTokens, err := svc.Login(LoginInput{Email: "sokha@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, loginTokens.AccessToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAuthService(gdb)

	input := RegisterInput{Email: "sokha@example.com", Password: "supersecret", Name: "Sokha"}
	_, _, err := svc.Register(input)
	require.NoError(t, err)

	_, _, err = svc.Register(input)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAuthService(gdb)

	_, _, err := svc.Register(RegisterInput{Email: "sokha@example.com", Password: "supersecret", Name: "Sokha"})
	require.NoError(t, err)

	_, _, err = svc.Login(LoginInput{Email: "sokha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAuthService(gdb)

	user, _, err := svc.Register(RegisterInput{Email: "sokha@example.com", Password: "supersecret", Name: "Sokha"})
	require.NoError(t, err)
	require.NoError(t, gdb.Model(user).Update("is_active", false).Error)

	_, _, err = svc.Login(LoginInput{Email: "sokha@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRefreshTokens(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAuthService(gdb)

	_, tokens, err := svc.Register(RegisterInput{Email: "sokha@example.com", Password: "supersecret", Name: "Sokha"})
	require.NoError(t, err)

	fresh, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	// an access token must not pass as a refresh token
	_, err = svc.Refresh(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestUpdateProfile(t *testing.T) {
	gdb := newTestDB(t)
	svc := newAuthService(gdb)

	user, _, err := svc.Register(RegisterInput{Email: "sokha@example.com", Password: "supersecret", Name: "Sokha"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, "Sokha Chan", "012999888", "")
	require.NoError(t, err)
	assert.Equal(t, "Sokha Chan", updated.Name)
	assert.Equal(t, "012999888", updated.Phone)
}
