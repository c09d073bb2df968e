package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/jakopako/sessionscraper/internal/log"
)

// MockPage is a canned response served by the MockFetcher.
type MockPage struct {
	Url     string
	Content string
	Cookies map[string]string
}

// MockFetcher serves MockPages instead of going over the network and
// records every request it receives. Unknown urls fail the way an
// unreachable host would.
type MockFetcher struct {
	*FetcherConfig
	jar      http.CookieJar
	pagesMap map[string]MockPage

	mu       sync.Mutex
	requests []Request
}

func NewMockFetcher(fc *FetcherConfig, jar http.CookieJar, pages ...MockPage) *MockFetcher {
	mf := &MockFetcher{
		FetcherConfig: fc,
		jar:           jar,
		pagesMap:      map[string]MockPage{},
	}
	for _, p := range pages {
		mf.pagesMap[p.Url] = p
	}
	return mf
}

func (m *MockFetcher) Fetch(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	p, ok := m.pagesMap[req.URL]
	if !ok {
		return "", fmt.Errorf("%s %q: dial tcp: connection refused", req.Method(), req.URL)
	}
	if m.jar != nil && len(p.Cookies) > 0 {
		u, err := url.Parse(req.URL)
		if err != nil {
			return "", err
		}
		cookies := []*http.Cookie{}
		for name, value := range p.Cookies {
			cookies = append(cookies, &http.Cookie{Name: name, Value: value})
		}
		m.jar.SetCookies(u, cookies)
	}
	if log.Debug {
		writeHTMLToFile(ctx, req.URL, p.Content, m.DebugDir)
	}
	return p.Content, nil
}

// Requests returns all requests received so far, in order.
func (m *MockFetcher) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request{}, m.requests...)
}

// Contacted reports whether a request for urlStr was received.
func (m *MockFetcher) Contacted(urlStr string) bool {
	for _, r := range m.Requests() {
		if r.URL == urlStr {
			return true
		}
	}
	return false
}

// To comply with the Fetcher interface
func (m *MockFetcher) Cancel() {}
