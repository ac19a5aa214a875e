package mockbank

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
)

func newTestBank(t *testing.T) (*Bank, humatest.TestAPI) {
	t.Helper()
	bank := NewBank()
	bank.SeedDemo()
	_, api := humatest.New(t)
	Mount(api, bank)
	return bank, api
}

func basicAuth(email, password string) string {
	return "Authorization: Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

func login(t *testing.T, bank *Bank, api humatest.TestAPI) string {
	t.Helper()
	resp := api.Post("/apiLogin",
		basicAuth("demo@easybank.com", "demo1234"),
		"X-XSRF-TOKEN: "+bank.CSRFToken(),
	)
	assert.Equal(t, http.StatusOK, resp.Code)

	var body LoginResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.JWT)
	return body.JWT
}

func TestLogin_ReturnsTokenAndProfile(t *testing.T) {
	bank, api := newTestBank(t)

	resp := api.Post("/apiLogin",
		basicAuth("demo@easybank.com", "demo1234"),
		"X-XSRF-TOKEN: "+bank.CSRFToken(),
	)
	assert.Equal(t, http.StatusOK, resp.Code)

	var body LoginResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Demo User", body.User.Name)
	assert.Equal(t, "demo@easybank.com", body.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	bank, api := newTestBank(t)

	resp := api.Post("/apiLogin",
		basicAuth("demo@easybank.com", "wrong"),
		"X-XSRF-TOKEN: "+bank.CSRFToken(),
	)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_MissingCSRF(t *testing.T) {
	_, api := newTestBank(t)

	resp := api.Post("/apiLogin", basicAuth("demo@easybank.com", "demo1234"))
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	_, api := newTestBank(t)

	for _, path := range []string{"/myAccount", "/myBalance", "/myCards", "/myLoans"} {
		resp := api.Get(path)
		assert.Equal(t, http.StatusUnauthorized, resp.Code, path)
	}
}

func TestBalanceFeed_SnakeCaseRows(t *testing.T) {
	bank, api := newTestBank(t)
	token := login(t, bank, api)

	resp := api.Get("/myBalance", "Authorization: "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	var rows []map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	assert.Len(t, rows, 8)
	assert.Contains(t, rows[0], "closing_balance")
	assert.Contains(t, rows[0], "account_number")
}

func TestNotices_PublicAndSetsCSRFCookie(t *testing.T) {
	bank, api := newTestBank(t)

	resp := api.Get("/notices")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Set-Cookie"), "XSRF-TOKEN="+bank.CSRFToken())

	var notices []map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&notices))
	assert.Len(t, notices, 2)
}

func TestAccountLifecycle(t *testing.T) {
	bank, api := newTestBank(t)
	token := login(t, bank, api)
	auth := "Authorization: " + token
	csrf := "X-XSRF-TOKEN: " + bank.CSRFToken()

	resp := api.Post("/myAccount", auth, csrf, CreateAccountBody{
		AccountType:   "Checking",
		BranchAddress: "5 Side Street",
	})
	assert.Equal(t, http.StatusCreated, resp.Code)

	var created accountRow
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.AccountNumber)
	assert.Len(t, bank.Accounts(), 3)

	resp = api.Delete("/myAccount?accountNumber="+created.AccountNumber, auth, csrf)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, bank.Accounts(), 2)
}

func TestAccountCreate_RequiresCSRF(t *testing.T) {
	bank, api := newTestBank(t)
	token := login(t, bank, api)

	resp := api.Post("/myAccount", "Authorization: "+token, CreateAccountBody{
		AccountType: "Checking",
	})
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestCardDelete_Unknown(t *testing.T) {
	bank, api := newTestBank(t)
	token := login(t, bank, api)

	resp := api.Delete("/myCards?cardId=nope",
		"Authorization: "+token,
		"X-XSRF-TOKEN: "+bank.CSRFToken(),
	)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRegisterEndpoint(t *testing.T) {
	bank, api := newTestBank(t)
	csrf := "X-XSRF-TOKEN: " + bank.CSRFToken()

	resp := api.Post("/register", csrf, RegisterBody{
		Name:     "New User",
		Email:    "new@easybank.com",
		Password: "longenough",
	})
	assert.Equal(t, http.StatusCreated, resp.Code)

	// Duplicate signup conflicts.
	resp = api.Post("/register", csrf, RegisterBody{
		Name:     "New User",
		Email:    "new@easybank.com",
		Password: "longenough",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)

	_, _, ok := bank.Login("new@easybank.com", "longenough")
	assert.True(t, ok)
}
