package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/easybank/portal/internal/model"
)

const registerPath = "/register"

// ValidationError reports a client-side form validation failure, keyed
// by field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type RegisterService struct {
	gateway Gateway
}

func NewRegisterService(gw Gateway) *RegisterService {
	return &RegisterService{gateway: gw}
}

// Register validates the signup form client-side, then submits it. The
// password confirmation never leaves the client.
func (s *RegisterService) Register(ctx context.Context, reg model.Registration, confirmPassword string) error {
	if err := validateRegistration(reg, confirmPassword); err != nil {
		return err
	}

	if reg.Role == "" {
		reg.Role = "user"
	}

	resp, err := s.gateway.DoPublic(ctx, http.MethodPost, registerPath, reg, nil)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

func validateRegistration(reg model.Registration, confirmPassword string) error {
	if !strings.Contains(reg.Email, "@") {
		return &ValidationError{Field: "email", Message: "please enter a valid email address"}
	}
	if len(reg.Password) < 8 {
		return &ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	if reg.Password != confirmPassword {
		return &ValidationError{Field: "confirmPassword", Message: "passwords do not match"}
	}
	return nil
}
