package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/easybank/portal/internal/model"
)

const cardPath = "/myCards"

type CardService struct {
	gateway Gateway
}

func NewCardService(gw Gateway) *CardService {
	return &CardService{gateway: gw}
}

// CardCreate is the input for requesting a new card.
type CardCreate struct {
	CardType       string `json:"cardType"`
	CardholderName string `json:"cardholderName"`
}

func (s *CardService) List(ctx context.Context) ([]model.Card, error) {
	resp, err := s.gateway.Do(ctx, http.MethodGet, cardPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeObjectOrList[model.Card](resp.Body)
}

func (s *CardService) Create(ctx context.Context, create CardCreate) error {
	resp, err := s.gateway.Do(ctx, http.MethodPost, cardPath, create)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

func (s *CardService) Delete(ctx context.Context, cardID string) error {
	path := cardPath + "?cardId=" + url.QueryEscape(cardID)
	resp, err := s.gateway.Do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}
