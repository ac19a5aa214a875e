package mockbank

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
)

// Mount registers every stub endpoint against the given API.
func Mount(api huma.API, bank *Bank) {
	(&LoginHandler{Bank: bank}).Register(api)
	(&RegisterHandler{Bank: bank}).Register(api)
	(&AccountHandler{Bank: bank}).Register(api)
	(&BalanceHandler{Bank: bank}).Register(api)
	(&CardHandler{Bank: bank}).Register(api)
	(&LoanHandler{Bank: bank}).Register(api)
	(&NoticeHandler{Bank: bank}).Register(api)
}

// NewHandler builds a ready-to-serve stub backend with demo fixtures.
func NewHandler() (http.Handler, *Bank) {
	bank := NewBank()
	bank.SeedDemo()

	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("EasyBank Mock", "1.0.0"))
	Mount(api, bank)

	return mux, bank
}
