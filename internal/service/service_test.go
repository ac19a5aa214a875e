package service

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/stretchr/testify/mock"
)

// mockGateway is a testify mock of the Gateway contract.
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	args := m.Called(ctx, method, path, body)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func (m *mockGateway) DoPublic(ctx context.Context, method, path string, body interface{}, headers http.Header) (*http.Response, error) {
	args := m.Called(ctx, method, path, body, headers)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func (m *mockGateway) CSRFToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}
