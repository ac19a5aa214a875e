package mockbank

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type ListAccountsInput struct {
	Authorization string `header:"Authorization"`
}

type ListAccountsOutput struct {
	Body []accountRow
}

// AccountHandler handles the /myAccount CRUD trio.
type AccountHandler struct {
	Bank *Bank
}

func (h *AccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/myAccount",
		Summary:     "List accounts",
		Tags:        []string{"Accounts"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/myAccount",
		Summary:       "Create account",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "delete-account",
		Method:      http.MethodDelete,
		Path:        "/myAccount",
		Summary:     "Delete account",
		Tags:        []string{"Accounts"},
	}, h.delete)
}

func (h *AccountHandler) list(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	if _, err := authorize(h.Bank, input.Authorization); err != nil {
		return nil, err
	}
	return &ListAccountsOutput{Body: h.Bank.Accounts()}, nil
}

type CreateAccountBody struct {
	AccountType   string `json:"accountType" required:"true" minLength:"1" doc:"Savings, Checking, ..."`
	BranchAddress string `json:"branchAddress" doc:"Servicing branch"`
}

type CreateAccountInput struct {
	Authorization string `header:"Authorization"`
	XSRFToken     string `header:"X-XSRF-TOKEN"`
	Body          CreateAccountBody
}

type CreateAccountOutput struct {
	Body accountRow
}

func (h *AccountHandler) create(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	if _, err := authorize(h.Bank, input.Authorization); err != nil {
		return nil, err
	}
	if err := requireCSRF(h.Bank, input.XSRFToken); err != nil {
		return nil, err
	}
	row := h.Bank.CreateAccount(input.Body.AccountType, input.Body.BranchAddress)
	return &CreateAccountOutput{Body: row}, nil
}

type DeleteAccountInput struct {
	Authorization string `header:"Authorization"`
	XSRFToken     string `header:"X-XSRF-TOKEN"`
	AccountNumber string `query:"accountNumber" required:"true" doc:"Account to close"`
}

type DeleteAccountOutput struct {
	Body struct {
		Deleted bool `json:"deleted"`
	}
}

func (h *AccountHandler) delete(ctx context.Context, input *DeleteAccountInput) (*DeleteAccountOutput, error) {
	if _, err := authorize(h.Bank, input.Authorization); err != nil {
		return nil, err
	}
	if err := requireCSRF(h.Bank, input.XSRFToken); err != nil {
		return nil, err
	}
	if !h.Bank.DeleteAccount(input.AccountNumber) {
		return nil, huma.Error404NotFound("no such account")
	}
	out := &DeleteAccountOutput{}
	out.Body.Deleted = true
	return out, nil
}
