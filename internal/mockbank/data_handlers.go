package mockbank

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/easybank/portal/internal/model"
)

type ListBalanceInput struct {
	Authorization string `header:"Authorization"`
}

type ListBalanceOutput struct {
	Body []transactionRow
}

// BalanceHandler handles GET /myBalance: the flat transaction+balance
// feed the client reconciles.
type BalanceHandler struct {
	Bank *Bank
}

func (h *BalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "my-balance",
		Method:      http.MethodGet,
		Path:        "/myBalance",
		Summary:     "Transaction feed",
		Description: "Returns the raw transaction list with per-row closing balances.",
		Tags:        []string{"Balance"},
	}, h.handle)
}

func (h *BalanceHandler) handle(ctx context.Context, input *ListBalanceInput) (*ListBalanceOutput, error) {
	if _, err := authorize(h.Bank, input.Authorization); err != nil {
		return nil, err
	}
	return &ListBalanceOutput{Body: h.Bank.Transactions()}, nil
}

// CardHandler handles the /myCards CRUD trio.
type CardHandler struct {
	Bank *Bank
}

type ListCardsInput struct {
	Authorization string `header:"Authorization"`
}

type ListCardsOutput struct {
	Body []model.Card
}

type CreateCardBody struct {
	CardType       string `json:"cardType" required:"true" minLength:"1" doc:"Credit or Debit"`
	CardholderName string `json:"cardholderName" required:"true" minLength:"1"`
}

type CreateCardInput struct {
	Authorization string `header:"Authorization"`
	XSRFToken     string `header:"X-XSRF-TOKEN"`
	Body          CreateCardBody
}

type CreateCardOutput struct {
	Body model.Card
}

type DeleteCardInput struct {
	Authorization string `header:"Authorization"`
	XSRFToken     string `header:"X-XSRF-TOKEN"`
	CardID        string `query:"cardId" required:"true" doc:"Card to remove"`
}

type DeleteCardOutput struct {
	Body struct {
		Deleted bool `json:"deleted"`
	}
}

func (h *CardHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-cards",
		Method:      http.MethodGet,
		Path:        "/myCards",
		Summary:     "List cards",
		Tags:        []string{"Cards"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID:   "create-card",
		Method:        http.MethodPost,
		Path:          "/myCards",
		Summary:       "Request card",
		Tags:          []string{"Cards"},
		DefaultStatus: http.StatusCreated,
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID: "delete-card",
		Method:      http.MethodDelete,
		Path:        "/myCards",
		Summary:     "Remove card",
		Tags:        []string{"Cards"},
	}, h.delete)
}

func (h *CardHandler) list(ctx context.Context, input *ListCardsInput) (*ListCardsOutput, error) {
	if _, err := authorize(h.Bank, input.Authorization); err != nil {
		return nil, err
	}
	return &ListCardsOutput{Body: h.Bank.Cards()}, nil
}

func (h *CardHandler) create(ctx context.Context, input *CreateCardInput) (*CreateCardOutput, error) {
	if _, err := authorize(h.Bank, input.Authorization); err != nil {
		return nil, err
	}
	if err := requireCSRF(h.Bank, input.XSRFToken); err != nil {
		return nil, err
	}
	card := h.Bank.CreateCard(input.Body.CardType, input.Body.CardholderName)
	return &CreateCardOutput{Body: card}, nil
}

func (h *CardHandler) delete(ctx context.Context, input *DeleteCardInput) (*DeleteCardOutput, error) {
	if _, err := authorize(h.Bank, input.Authorization); err != nil {
		return nil, err
	}
	if err := requireCSRF(h.Bank, input.XSRFToken); err != nil {
		return nil, err
	}
	if !h.Bank.DeleteCard(input.CardID) {
		return nil, huma.Error404NotFound("no such card")
	}
	out := &DeleteCardOutput{}
	out.Body.Deleted = true
	return out, nil
}

type ListLoansInput struct {
	Authorization string `header:"Authorization"`
}

type ListLoansOutput struct {
	Body []model.Loan
}

// LoanHandler handles GET /myLoans.
type LoanHandler struct {
	Bank *Bank
}

func (h *LoanHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-loans",
		Method:      http.MethodGet,
		Path:        "/myLoans",
		Summary:     "List loans",
		Tags:        []string{"Loans"},
	}, h.handle)
}

func (h *LoanHandler) handle(ctx context.Context, input *ListLoansInput) (*ListLoansOutput, error) {
	if _, err := authorize(h.Bank, input.Authorization); err != nil {
		return nil, err
	}
	return &ListLoansOutput{Body: h.Bank.Loans()}, nil
}

type ListNoticesOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      []model.Notice
}

// NoticeHandler handles GET /notices. Public, and doubles as the CSRF
// bootstrap endpoint: the response sets the XSRF-TOKEN cookie clients
// echo back on state-changing calls.
type NoticeHandler struct {
	Bank *Bank
}

func (h *NoticeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-notices",
		Method:      http.MethodGet,
		Path:        "/notices",
		Summary:     "List notices",
		Tags:        []string{"Notices"},
	}, h.handle)
}

func (h *NoticeHandler) handle(ctx context.Context, input *struct{}) (*ListNoticesOutput, error) {
	return &ListNoticesOutput{
		SetCookie: http.Cookie{
			Name:  "XSRF-TOKEN",
			Value: h.Bank.CSRFToken(),
			Path:  "/",
		},
		Body: h.Bank.Notices(),
	}, nil
}
