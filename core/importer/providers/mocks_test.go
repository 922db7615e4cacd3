// ABOUTME: Mock HTTP client for provider adapter tests
// ABOUTME: Serves canned JSON bodies keyed by URL substring

package providers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"natureshare-pipeline/core/interfaces"
)

type mockResponse struct {
	status int
	body   string
}

func (m *mockResponse) StatusCode() int          { return m.status }
func (m *mockResponse) Body() io.ReadCloser      { return io.NopCloser(strings.NewReader(m.body)) }
func (m *mockResponse) Header(key string) string { return "" }

type mockHTTPClient struct {
	responses map[string]string
	requests  []string
}

func newMockHTTPClient() *mockHTTPClient {
	return &mockHTTPClient{responses: make(map[string]string)}
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	m.requests = append(m.requests, url)
	for substr, body := range m.responses {
		if strings.Contains(url, substr) {
			return &mockResponse{status: 200, body: body}, nil
		}
	}
	return nil, fmt.Errorf("no canned response for %s", url)
}
