package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/models"
	"github.com/techagentng/civiceye/services/jwt"
	"github.com/techagentng/civiceye/services/session"
)

func TestSignupUser(t *testing.T) {
	f := newFixture(t)

	resp, apiErr := f.auth.SignupUser(&models.SignupRequest{Name: "Asha Rao", Email: "asha@example.com", Password: "secret123"})
	require.Nil(t, apiErr)
	assert.NotZero(t, resp.User.ID)
	assert.Equal(t, models.RoleCitizen, resp.User.Role)
	assert.Zero(t, resp.User.Points)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Asha+Rao&background=random", resp.User.AvatarURL)
	assert.NotEqual(t, "secret123", resp.User.HashedPassword)

	claims, err := jwt.ValidateAndGetClaims(resp.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", claims["email"])

	slot, err := f.sessions.Load(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, slot.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "Asha", "asha@example.com", "")

	_, apiErr := f.auth.SignupUser(&models.SignupRequest{Name: "Other", Email: "asha@example.com", Password: "secret123"})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, errs.ErrDuplicateEmail.Message, apiErr.Message)

	users, err := f.auth.ListUsers("")
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSignupWeakPassword(t *testing.T) {
	f := newFixture(t)
	_, apiErr := f.auth.SignupUser(&models.SignupRequest{Name: "Asha", Email: "asha@example.com", Password: "123"})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestCreateOfficial(t *testing.T) {
	f := newFixture(t)
	citizen := f.signup(t, "Asha", "asha@example.com", "")
	assert.False(t, citizen.IsAdmin())

	official, apiErr := f.auth.CreateOfficial(&models.SignupRequest{Name: "Officer", Email: "officer@example.com", Password: "secret123"})
	require.Nil(t, apiErr)
	assert.True(t, official.IsAdmin())

	_, apiErr = f.auth.CreateOfficial(&models.SignupRequest{Name: "Officer", Email: "OFFICER@example.com", Password: "secret123"})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)

	resp, apiErr := f.auth.LoginUser(&models.LoginRequest{Email: "officer@example.com", Password: "secret123"})
	require.Nil(t, apiErr)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestListUsers(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "Asha", "asha@example.com", "")
	f.signup(t, "Officer", "officer@example.com", models.RoleAdmin)

	all, err := f.auth.ListUsers("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	admins, err := f.auth.ListUsers(models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "officer@example.com", admins[0].Email)

	_, err = f.auth.ListUsers("SUPERUSER")
	assert.Equal(t, http.StatusBadRequest, errs.Status(err))
}

func TestLoginUser(t *testing.T) {
	f := newFixture(t)
	u := f.signup(t, "Asha", "asha@example.com", "")

	resp, apiErr := f.auth.LoginUser(&models.LoginRequest{Email: "ASHA@example.com", Password: "secret123"})
	require.Nil(t, apiErr)
	assert.Equal(t, u.ID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)

	_, apiErr = f.auth.LoginUser(&models.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	require.NotNil(t, apiErr)
	assert.Equal(t, errs.ErrInvalidPassword, apiErr)

	_, apiErr = f.auth.LoginUser(&models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.Equal(t, errs.ErrInvalidPassword, apiErr)

	require.NoError(t, f.auth.Logout(context.Background(), resp.AccessToken))
	_, err := f.sessions.Load(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestUpdateDeviceToken(t *testing.T) {
	f := newFixture(t)
	u := f.signup(t, "Asha", "asha@example.com", "")

	require.NoError(t, f.auth.UpdateDeviceToken(u.ID, "fcm-token"))
	profile, err := f.auth.GetUserProfile(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "fcm-token", profile.DeviceToken)
}
