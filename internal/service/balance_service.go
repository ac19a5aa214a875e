package service

import (
	"context"
	"net/http"

	"github.com/easybank/portal/internal/model"
)

const balancePath = "/myBalance"

// BalanceService fetches the raw transaction+balance feed the
// reconciliation engine consumes. Records are normalized to the
// canonical schema at this boundary (model.TransactionRecord accepts
// both field spellings on ingest).
type BalanceService struct {
	gateway Gateway
}

func NewBalanceService(gw Gateway) *BalanceService {
	return &BalanceService{gateway: gw}
}

func (s *BalanceService) Transactions(ctx context.Context) ([]model.TransactionRecord, error) {
	resp, err := s.gateway.Do(ctx, http.MethodGet, balancePath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeObjectOrList[model.TransactionRecord](resp.Body)
}
