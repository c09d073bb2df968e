package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/jakopako/sessionscraper/internal/log"
	"golang.org/x/net/html/charset"
)

// The SessionFetcher sends all of its requests through one http client
// sharing a single cookie jar, so that a session established by one
// request is reused by the next.
type SessionFetcher struct {
	*FetcherConfig
	client *resty.Client
}

func NewSessionFetcher(fc *FetcherConfig, jar http.CookieJar) *SessionFetcher {
	if fc.UserAgent == "" {
		fc.UserAgent = DefaultUserAgent
	}
	if fc.MaxRedirects <= 0 {
		fc.MaxRedirects = DefaultMaxRedirects
	}

	client := resty.New()
	client.SetCookieJar(jar)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(fc.MaxRedirects))
	client.SetHeader("User-Agent", fc.UserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if fc.Timeout > 0 {
		client.SetTimeout(fc.Timeout)
	}
	if fc.CloudflareBypass {
		client.SetTransport(cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport))
	}
	instrumentClient(client)

	return &SessionFetcher{
		FetcherConfig: fc,
		client:        client,
	}
}

func (s *SessionFetcher) Fetch(ctx context.Context, req Request) (string, error) {
	logger := log.LoggerFromContext(ctx).With(slog.String("fetcher", "session"), slog.String("url", req.URL))
	logger.Debug("fetching page", slog.String("method", req.Method()), slog.String("user-agent", s.UserAgent))

	r := s.client.R().SetContext(ctx)
	var res *resty.Response
	var err error
	if req.Body != "" {
		res, err = r.SetHeader("Content-Type", formContentType).
			SetBody(req.Body).
			Post(req.URL)
	} else {
		res, err = r.Get(req.URL)
	}
	if err != nil {
		return "", err
	}

	// a response with an error status is still a response, it's up to
	// the caller to make sense of the body
	if res.StatusCode() >= 400 {
		logger.Info(fmt.Sprintf("status code %d", res.StatusCode()))
	}

	body := decodeBody(ctx, res.Body(), res.Header().Get("Content-Type"))
	if log.Debug {
		writeHTMLToFile(ctx, req.URL, body, s.DebugDir)
	}
	return body, nil
}

// Cancel releases idle connections held by the client.
func (s *SessionFetcher) Cancel() {
	s.client.GetClient().CloseIdleConnections()
}

// decodeBody converts raw to utf-8 based on the content type header and
// any <meta> charset declaration. If that fails the bytes are used as is.
func decodeBody(ctx context.Context, raw []byte, contentType string) string {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		log.LoggerFromContext(ctx).Debug(fmt.Sprintf("unable to determine charset: %v", err))
		return string(raw)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		log.LoggerFromContext(ctx).Debug(fmt.Sprintf("unable to decode body: %v", err))
		return string(raw)
	}
	return string(decoded)
}
