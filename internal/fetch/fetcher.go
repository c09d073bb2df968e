// Package fetch issues the http requests of a scraping run.
package fetch

import (
	"context"
	"net/http"
	"time"
)

// DefaultUserAgent is sent when no other user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"

// DefaultMaxRedirects is the number of redirects followed per request.
const DefaultMaxRedirects = 10

const formContentType = "application/x-www-form-urlencoded"

// A Fetcher allows to fetch the content of a web page
type Fetcher interface {
	// Fetch returns the body of the response. Only failures below the
	// application layer are errors, the http status code is not checked.
	Fetch(ctx context.Context, req Request) (string, error)
	Cancel()
}

// Request describes a single request. A non-empty Body turns it into a
// form POST, otherwise a GET is sent.
type Request struct {
	URL  string
	Body string
}

func (r Request) Method() string {
	if r.Body != "" {
		return http.MethodPost
	}
	return http.MethodGet
}

// FetcherConfig contains the settings shared by all fetchers.
type FetcherConfig struct {
	UserAgent        string        `yaml:"user_agent,omitempty" env:"SESSIONSCRAPER_USER_AGENT"`
	Timeout          time.Duration `yaml:"timeout,omitempty" env:"SESSIONSCRAPER_TIMEOUT"`
	MaxRedirects     int           `yaml:"max_redirects,omitempty" env:"SESSIONSCRAPER_MAX_REDIRECTS" env-default:"10"`
	CloudflareBypass bool          `yaml:"cloudflare_bypass,omitempty" env:"SESSIONSCRAPER_CLOUDFLARE_BYPASS"`
	DebugDir         string        `yaml:"debug_dir,omitempty" env:"SESSIONSCRAPER_DEBUG_DIR" env-default:"debug"`
}
