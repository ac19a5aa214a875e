package mockbank

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/easybank/portal/internal/model"
)

// LoginInput carries the Basic credential pair and the echoed CSRF
// token. No body: credentials travel in the Authorization header.
type LoginInput struct {
	Authorization string `header:"Authorization" doc:"Basic credentials"`
	XSRFToken     string `header:"X-XSRF-TOKEN" doc:"CSRF token issued via cookie"`
}

// LoginResponseBody is the token-plus-profile payload a successful
// login returns.
type LoginResponseBody struct {
	JWT  string        `json:"jwt" doc:"Bearer token for subsequent requests"`
	User model.Profile `json:"user" doc:"Authenticated user profile"`
}

type LoginOutput struct {
	Body LoginResponseBody
}

// LoginHandler handles POST /apiLogin.
type LoginHandler struct {
	Bank *Bank
}

func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/apiLogin",
		Summary:     "Log in",
		Description: "Exchanges Basic credentials for a bearer token and user profile.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if err := requireCSRF(h.Bank, input.XSRFToken); err != nil {
		return nil, err
	}

	email, password, ok := parseBasicAuth(input.Authorization)
	if !ok {
		return nil, huma.Error401Unauthorized("missing or malformed credentials")
	}

	token, profile, ok := h.Bank.Login(email, password)
	if !ok {
		return nil, huma.Error401Unauthorized("invalid email or password")
	}

	return &LoginOutput{Body: LoginResponseBody{JWT: token, User: profile}}, nil
}

// RegisterBody mirrors the signup form's backend column mapping.
type RegisterBody struct {
	Name         string `json:"name" required:"true" minLength:"1" doc:"Full name"`
	Email        string `json:"email" required:"true" format:"email" doc:"Email address"`
	MobileNumber string `json:"mobile_number" doc:"Mobile number"`
	Password     string `json:"pwd" required:"true" minLength:"8" doc:"Password"`
	Role         string `json:"role" doc:"Requested role, defaults to user"`
}

type RegisterInput struct {
	XSRFToken string `header:"X-XSRF-TOKEN" doc:"CSRF token issued via cookie"`
	Body      RegisterBody
}

type RegisterOutput struct {
	Body struct {
		Created bool `json:"created"`
	}
}

// RegisterHandler handles POST /register.
type RegisterHandler struct {
	Bank *Bank
}

func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/register",
		Summary:       "Register",
		Description:   "Creates a new customer signup.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	if err := requireCSRF(h.Bank, input.XSRFToken); err != nil {
		return nil, err
	}

	ok := h.Bank.RegisterUser(input.Body.Email, input.Body.Password, model.Profile{
		Name:  input.Body.Name,
		Email: input.Body.Email,
	})
	if !ok {
		return nil, huma.NewError(http.StatusConflict, "email already registered")
	}

	out := &RegisterOutput{}
	out.Body.Created = true
	return out, nil
}

func parseBasicAuth(header string) (email, password string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, prefix))
	if err != nil {
		return "", "", false
	}
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// requireCSRF rejects state-changing calls whose header token does not
// match the cookie-issued one.
func requireCSRF(bank *Bank, headerToken string) error {
	if headerToken != bank.CSRFToken() {
		return huma.Error403Forbidden("csrf token missing or mismatched")
	}
	return nil
}

// authorize resolves the Authorization header to a user, accepting the
// raw token with or without a Bearer prefix.
func authorize(bank *Bank, header string) (string, error) {
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", huma.Error401Unauthorized("missing credential")
	}
	email, ok := bank.Authorize(token)
	if !ok {
		return "", huma.Error401Unauthorized("invalid or expired credential")
	}
	return email, nil
}
