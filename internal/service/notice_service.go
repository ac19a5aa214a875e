package service

import (
	"context"
	"net/http"

	"github.com/easybank/portal/internal/model"
)

const noticePath = "/notices"

// NoticeService lists public bank notices. No credential required.
type NoticeService struct {
	gateway Gateway
}

func NewNoticeService(gw Gateway) *NoticeService {
	return &NoticeService{gateway: gw}
}

func (s *NoticeService) List(ctx context.Context) ([]model.Notice, error) {
	resp, err := s.gateway.DoPublic(ctx, http.MethodGet, noticePath, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeObjectOrList[model.Notice](resp.Body)
}
