package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/easybank/portal/internal/model"
)

const accountPath = "/myAccount"

// AccountService covers account CRUD. Accounts are backend-owned; the
// client only issues request/response pairs.
type AccountService struct {
	gateway Gateway
}

func NewAccountService(gw Gateway) *AccountService {
	return &AccountService{gateway: gw}
}

// AccountCreate is the input for opening a new account.
type AccountCreate struct {
	AccountType   string `json:"accountType"`
	BranchAddress string `json:"branchAddress"`
}

// List returns the user's accounts. The backend returns either a JSON
// array or, for single-account customers, a bare object; both decode to
// a slice.
func (s *AccountService) List(ctx context.Context) ([]model.Account, error) {
	resp, err := s.gateway.Do(ctx, http.MethodGet, accountPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeObjectOrList[model.Account](resp.Body)
}

func (s *AccountService) Create(ctx context.Context, create AccountCreate) error {
	resp, err := s.gateway.Do(ctx, http.MethodPost, accountPath, create)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

func (s *AccountService) Delete(ctx context.Context, accountNumber string) error {
	path := accountPath + "?accountNumber=" + url.QueryEscape(accountNumber)
	resp, err := s.gateway.Do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

// decodeObjectOrList tolerates the backend answering a list endpoint
// with a single object.
func decodeObjectOrList[T any](body io.Reader) ([]T, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	return []T{item}, nil
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
