package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/easybank/portal/internal/gateway"
	"github.com/easybank/portal/internal/model"
	"github.com/easybank/portal/internal/session"
)

// ErrInvalidCredentials is returned when the backend rejects a login.
// The session store is left untouched in that case.
var ErrInvalidCredentials = errors.New("invalid credentials")

const loginPath = "/apiLogin"

// AuthService exchanges credentials with the backend and owns the
// login/logout transitions of the session store.
type AuthService struct {
	gateway Gateway
	store   session.Store
}

func NewAuthService(gw Gateway, store session.Store) *AuthService {
	return &AuthService{gateway: gw, store: store}
}

// loginResponse accepts the token and profile field spellings the
// backend uses interchangeably.
type loginResponse struct {
	JWT     string        `json:"jwt"`
	Token   string        `json:"token"`
	User    model.Profile `json:"user"`
	Profile model.Profile `json:"profile"`
}

// Login exchanges credentials for a session and persists it. On
// failure the store is not mutated: a 401/403 maps to
// ErrInvalidCredentials, anything else surfaces as a network or
// request failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.Session, error) {
	basic := base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
	headers := http.Header{}
	headers.Set("Authorization", "Basic "+basic)

	resp, err := s.gateway.DoPublic(ctx, http.MethodPost, loginPath, nil, headers)
	if err != nil {
		switch gateway.StatusOf(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return model.Session{}, ErrInvalidCredentials
		case 0:
			return model.Session{}, fmt.Errorf("login: %w", err)
		default:
			return model.Session{}, err
		}
	}

	var body loginResponse
	if err := gateway.DecodeJSON(resp, &body); err != nil {
		return model.Session{}, fmt.Errorf("login: decode response: %w", err)
	}

	token := body.JWT
	if token == "" {
		token = body.Token
	}
	if token == "" {
		// Cookie-only backends return no token; the session cookie in
		// the gateway jar carries the credential.
		token = "authenticated"
	}

	profile := body.User
	if profile == (model.Profile{}) {
		profile = body.Profile
	}
	if profile.Email == "" {
		profile.Email = email
	}

	sess := model.Session{Token: token, Profile: profile}
	if err := s.store.Save(sess); err != nil {
		return model.Session{}, fmt.Errorf("login: persist session: %w", err)
	}
	return sess, nil
}

// Logout clears the persisted session. Idempotent.
func (s *AuthService) Logout() error {
	return s.store.Clear()
}

// CurrentSession reads the persisted session, gating protected
// commands.
func (s *AuthService) CurrentSession() (model.Session, bool) {
	return s.store.Current()
}
