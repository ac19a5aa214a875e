package service

import (
	"context"
	"net/http"

	"github.com/easybank/portal/internal/model"
)

const loanPath = "/myLoans"

type LoanService struct {
	gateway Gateway
}

func NewLoanService(gw Gateway) *LoanService {
	return &LoanService{gateway: gw}
}

func (s *LoanService) List(ctx context.Context) ([]model.Loan, error) {
	resp, err := s.gateway.Do(ctx, http.MethodGet, loanPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeObjectOrList[model.Loan](resp.Body)
}
