package service

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/easybank/portal/internal/gateway"
	"github.com/easybank/portal/internal/session"
)

func basicHeaderFor(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

func TestLogin_Success(t *testing.T) {
	gw := new(mockGateway)
	store := session.NewMemStore()
	svc := NewAuthService(gw, store)

	gw.On("DoPublic", mock.Anything, http.MethodPost, "/apiLogin", nil,
		mock.MatchedBy(func(h http.Header) bool {
			return h.Get("Authorization") == basicHeaderFor("demo@easybank.com", "demo1234")
		})).
		Return(jsonResponse(http.StatusOK,
			`{"jwt":"jwt-abc","user":{"name":"Demo User","email":"demo@easybank.com"}}`), nil)

	sess, err := svc.Login(context.Background(), "demo@easybank.com", "demo1234")
	assert.NoError(t, err)
	assert.Equal(t, "jwt-abc", sess.Token)
	assert.Equal(t, "Demo User", sess.Profile.Name)

	persisted, ok := store.Current()
	assert.True(t, ok)
	assert.Equal(t, sess, persisted)
	gw.AssertExpectations(t)
}

func TestLogin_TokenSpellingFallback(t *testing.T) {
	gw := new(mockGateway)
	store := session.NewMemStore()
	svc := NewAuthService(gw, store)

	gw.On("DoPublic", mock.Anything, http.MethodPost, "/apiLogin", nil, mock.Anything).
		Return(jsonResponse(http.StatusOK, `{"token":"tok-1","profile":{"email":"demo@easybank.com"}}`), nil)

	sess, err := svc.Login(context.Background(), "demo@easybank.com", "demo1234")
	assert.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, "demo@easybank.com", sess.Profile.Email)
}

func TestLogin_CookieOnlyBackend(t *testing.T) {
	gw := new(mockGateway)
	store := session.NewMemStore()
	svc := NewAuthService(gw, store)

	gw.On("DoPublic", mock.Anything, http.MethodPost, "/apiLogin", nil, mock.Anything).
		Return(jsonResponse(http.StatusOK, `{}`), nil)

	sess, err := svc.Login(context.Background(), "demo@easybank.com", "demo1234")
	assert.NoError(t, err)
	assert.Equal(t, "authenticated", sess.Token)
	// Email is backfilled from the login form when the backend returns
	// no profile.
	assert.Equal(t, "demo@easybank.com", sess.Profile.Email)
}

func TestLogin_InvalidCredentialsLeaveStoreUntouched(t *testing.T) {
	gw := new(mockGateway)
	store := session.NewMemStore()
	svc := NewAuthService(gw, store)

	gw.On("DoPublic", mock.Anything, http.MethodPost, "/apiLogin", nil, mock.Anything).
		Return(nil, &gateway.RequestError{Status: http.StatusUnauthorized})

	_, err := svc.Login(context.Background(), "demo@easybank.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, ok := store.Current()
	assert.False(t, ok, "failed login must not mutate the store")
}

func TestLogin_NetworkFailure(t *testing.T) {
	gw := new(mockGateway)
	store := session.NewMemStore()
	svc := NewAuthService(gw, store)

	transportErr := errors.New("connection refused")
	gw.On("DoPublic", mock.Anything, http.MethodPost, "/apiLogin", nil, mock.Anything).
		Return(nil, transportErr)

	_, err := svc.Login(context.Background(), "demo@easybank.com", "demo1234")
	assert.ErrorIs(t, err, transportErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestLogin_ServerErrorPassesThrough(t *testing.T) {
	gw := new(mockGateway)
	svc := NewAuthService(gw, session.NewMemStore())

	gw.On("DoPublic", mock.Anything, http.MethodPost, "/apiLogin", nil, mock.Anything).
		Return(nil, &gateway.RequestError{Status: http.StatusBadGateway})

	_, err := svc.Login(context.Background(), "demo@easybank.com", "demo1234")
	assert.Equal(t, http.StatusBadGateway, gateway.StatusOf(err))
}

func TestLogout_Idempotent(t *testing.T) {
	store := session.NewMemStore()
	svc := NewAuthService(new(mockGateway), store)

	assert.NoError(t, svc.Logout())
	assert.NoError(t, svc.Logout())
	_, ok := svc.CurrentSession()
	assert.False(t, ok)
}
