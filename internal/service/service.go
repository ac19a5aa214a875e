package service

import (
	"context"
	"net/http"

	"github.com/easybank/portal/internal/gateway"
	"github.com/easybank/portal/internal/session"
)

// Gateway is the outbound request surface the services consume. The
// concrete implementation is gateway.Client; tests substitute a mock.
type Gateway interface {
	Do(ctx context.Context, method, path string, body interface{}) (*http.Response, error)
	DoPublic(ctx context.Context, method, path string, body interface{}, headers http.Header) (*http.Response, error)
	CSRFToken(ctx context.Context) (string, error)
}

var _ Gateway = (*gateway.Client)(nil)

// Service holds all portal services.
type Service struct {
	Auth     *AuthService
	Account  *AccountService
	Balance  *BalanceService
	Card     *CardService
	Loan     *LoanService
	Notice   *NoticeService
	Register *RegisterService
}

// NewService creates a new Service over the given gateway and session
// store.
func NewService(gw Gateway, store session.Store) *Service {
	return &Service{
		Auth:     NewAuthService(gw, store),
		Account:  NewAccountService(gw),
		Balance:  NewBalanceService(gw),
		Card:     NewCardService(gw),
		Loan:     NewLoanService(gw),
		Notice:   NewNoticeService(gw),
		Register: NewRegisterService(gw),
	}
}
