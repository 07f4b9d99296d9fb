// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search runs a title search end to end: fetch the results page,
// extract paper records, apply the author tag filter, and annotate every
// author with their tags.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pdiddy/scholar-tags/internal/extract"
	"github.com/pdiddy/scholar-tags/internal/metrics"
	"github.com/pdiddy/scholar-tags/internal/tags"
	"github.com/pdiddy/scholar-tags/pkg/types"
)

// ErrTitleRequired rejects a search with a blank title.
var ErrTitleRequired = errors.New("title is required")

// Fetcher retrieves the results page for a title query.
type Fetcher interface {
	Fetch(ctx context.Context, title string) (*goquery.Document, error)
}

// Request holds the search parameters.
type Request struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// Output holds the annotated results.
type Output struct {
	Papers []types.AnnotatedPaper `json:"papers" yaml:"papers"`
	Total  int                    `json:"total" yaml:"total"`
}

// Service wires the fetcher, extractor and tag store together.
type Service struct {
	fetcher   Fetcher
	extractor *extract.Extractor
	store     *tags.Store
	logger    *zap.Logger
}

// NewService creates a Service. A nil logger means no logging.
func NewService(f Fetcher, e *extract.Extractor, s *tags.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: f, extractor: e, store: s, logger: logger}
}

// Search fetches the first results page for req.Title and returns the
// papers, filtered by req.Tags when any are given.
func (s *Service) Search(ctx context.Context, req Request) (Output, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		metrics.Searches.WithLabelValues("invalid").Inc()
		return Output{}, ErrTitleRequired
	}

	doc, err := s.fetcher.Fetch(ctx, title)
	if err != nil {
		metrics.Searches.WithLabelValues("fetch_error").Inc()
		return Output{}, fmt.Errorf("fetching results for %q: %w", title, err)
	}

	out := s.Process(doc, req.Tags)
	metrics.Searches.WithLabelValues("ok").Inc()
	metrics.SearchPapers.Observe(float64(out.Total))
	s.logger.Info("search complete",
		zap.String("title", title),
		zap.Strings("tags", req.Tags),
		zap.Int("papers", out.Total))
	return out, nil
}

// Process runs extraction, filtering and annotation over an already
// fetched page.
func (s *Service) Process(doc *goquery.Document, selected []string) Output {
	records := s.extractor.Extract(doc)
	filtered := s.store.FilterPapersByTags(records, selected)
	papers := s.store.Annotate(filtered)
	return Output{Papers: papers, Total: len(papers)}
}
