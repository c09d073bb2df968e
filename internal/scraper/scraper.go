// Package scraper runs the login, fetch and extraction steps of a single
// scraping run and assembles the result document.
package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jakopako/sessionscraper/internal/fetch"
	"github.com/jakopako/sessionscraper/internal/log"
	"github.com/jakopako/sessionscraper/internal/selector"
	"github.com/jakopako/sessionscraper/internal/session"
	"github.com/jakopako/sessionscraper/internal/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("sessionscraper/scraper")

const (
	StageLogin = "login"
	StageFetch = "fetch"
)

// A Scraper logs in at LoginURL, then fetches PageURL with the same
// session and extracts the Selectors from the second page.
type Scraper struct {
	LoginURL    string
	LoginFields string
	PageURL     string
	Selectors   []selector.Selector
	Fetcher     fetch.Fetcher
	Jar         *session.Jar
}

// Scrape runs all steps in order. A transport error in one step ends the
// run, later steps are not attempted. The returned result is never nil.
func (s *Scraper) Scrape(ctx context.Context) *types.Result {
	ctx, span := tracer.Start(ctx, "scraper:Scrape")
	defer span.End()

	logger := log.LoggerFromContext(ctx).With(slog.String("page", s.PageURL))
	ctx = log.ContextWithLogger(ctx, logger)

	// without fields the login url is still requested (GET) so that the
	// server can set its session cookies
	if _, err := s.fetchStage(ctx, StageLogin, fetch.Request{URL: s.LoginURL, Body: s.LoginFields}); err != nil {
		return s.fail(ctx, err)
	}

	body, err := s.fetchStage(ctx, StageFetch, fetch.Request{URL: s.PageURL})
	if err != nil {
		return s.fail(ctx, err)
	}

	_, extractSpan := tracer.Start(ctx, "scraper:Extract")
	values := selector.Extract(ctx, body, s.Selectors)
	extractSpan.SetAttributes(attribute.Int("selectors", values.Len()))
	extractSpan.End()

	cookies := map[string]string{}
	if s.Jar != nil {
		cookies = s.Jar.Snapshot()
	}
	logger.Debug(fmt.Sprintf("extracted %d selectors, session holds %d cookies", values.Len(), len(cookies)))
	return types.NewSuccessResult(values, cookies)
}

// StageError is a transport error that happened during the named stage.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func (s *Scraper) fetchStage(ctx context.Context, stage string, req fetch.Request) (string, error) {
	ctx, span := tracer.Start(ctx, "scraper:"+stage)
	defer span.End()
	span.SetAttributes(
		attribute.String("url", req.URL),
		attribute.String("method", req.Method()),
	)

	logger := log.LoggerFromContext(ctx).With(slog.String("stage", stage))
	logger.Debug(fmt.Sprintf("%s %s", req.Method(), req.URL))
	body, err := s.Fetcher.Fetch(log.ContextWithLogger(ctx, logger), req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, stage+" failed")
		return "", &StageError{Stage: stage, Err: err}
	}
	return body, nil
}

func (s *Scraper) fail(ctx context.Context, err error) *types.Result {
	log.LoggerFromContext(ctx).Warn(err.Error())
	return types.NewErrorResult(err.Error())
}
