package download

import (
	"crypto/tls"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Fetcher abstracts HTTP calls for testability
type Fetcher interface {
	Get(url string) (*http.Response, error)
}

// RealFetcher wraps http.Client for production use
type RealFetcher struct {
	client *http.Client
}

// NewRealFetcher creates a production fetcher. No client timeout is set;
// downloads run to completion on whatever the transport provides.
func NewRealFetcher() Fetcher {
	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
	return &RealFetcher{client: client}
}

// NewRealFetcherWithClient creates a fetcher around a caller-owned client.
func NewRealFetcherWithClient(client *http.Client) Fetcher {
	return &RealFetcher{client: client}
}

func (f *RealFetcher) Get(url string) (*http.Response, error) {
	return f.client.Get(url)
}

// MockFetcher simulates HTTP responses for testing
type MockFetcher struct {
	responses map[string]*http.Response
	errors    map[string]error
	requests  []string
}

// NewMockFetcher creates a mock fetcher
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		responses: make(map[string]*http.Response),
		errors:    make(map[string]error),
	}
}

// AddResponse registers a mock response for a URL
func (m *MockFetcher) AddResponse(urlStr string, statusCode int, body string) {
	parsedURL, _ := url.Parse(urlStr)
	m.responses[urlStr] = &http.Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
		Request: &http.Request{
			URL: parsedURL,
		},
	}
}

// AddError registers a mock transport error for a URL
func (m *MockFetcher) AddError(urlStr string, err error) {
	m.errors[urlStr] = err
}

// Requests returns the URLs fetched so far, in order.
func (m *MockFetcher) Requests() []string {
	return m.requests
}

func (m *MockFetcher) Get(urlStr string) (*http.Response, error) {
	m.requests = append(m.requests, urlStr)
	if err, ok := m.errors[urlStr]; ok {
		return nil, err
	}
	if resp, ok := m.responses[urlStr]; ok {
		return resp, nil
	}
	// Unknown URLs are not found
	return &http.Response{
		StatusCode: 404,
		Status:     http.StatusText(404),
		Body:       io.NopCloser(strings.NewReader("Not Found")),
		Header:     make(http.Header),
	}, nil
}
