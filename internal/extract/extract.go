// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a Google Scholar results page into PaperRecords.
//
// Extraction is a pure transformation over a parsed document: no network
// and no persistence. Each result block is handled on its own, and a block
// that cannot be extracted is logged and skipped so the rest of the page
// still comes through.
package extract

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pdiddy/scholar-tags/pkg/types"
)

// UnknownTitle is used when a result block has no title element.
const UnknownTitle = "Unknown Title"

const (
	bylineSeparator = " - "
	authorSeparator = ","
	citedByMarker   = "Cited by "
)

// Selectors names the elements extraction reads from a results page.
type Selectors struct {
	// Block matches one search result.
	Block string
	// Title matches the result heading inside a block.
	Title string
	// Byline matches the authors/venue line inside a block.
	Byline string
	// Snippet matches the abstract excerpt inside a block.
	Snippet string
	// Link matches the anchors searched for the "Cited by" count.
	Link string
}

// DefaultSelectors returns the selectors for Google Scholar result markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Block:   "div.gs_r.gs_or.gs_scl",
		Title:   "h3.gs_rt",
		Byline:  "div.gs_a",
		Snippet: "div.gs_rs",
		Link:    "a",
	}
}

// Extractor converts result pages into paper records.
type Extractor struct {
	sel    Selectors
	logger *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSelectors overrides the default Scholar selectors.
func WithSelectors(sel Selectors) Option {
	return func(e *Extractor) {
		e.sel = sel
	}
}

// WithLogger sets the logger used to report skipped blocks.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
	}
}

// New creates an Extractor using DefaultSelectors and a no-op logger.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		sel:    DefaultSelectors(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns one record per result block in page order. Blocks that
// fail extraction are logged and left out.
func (e *Extractor) Extract(doc *goquery.Document) []types.PaperRecord {
	if doc == nil {
		return nil
	}
	blocks := doc.Find(e.sel.Block)
	papers := make([]types.PaperRecord, 0, blocks.Length())
	blocks.Each(func(i int, block *goquery.Selection) {
		paper, err := e.extractBlock(block)
		if err != nil {
			e.logger.Warn("skipping result block", zap.Int("block", i), zap.Error(err))
			return
		}
		papers = append(papers, paper)
	})
	e.logger.Debug("extracted results",
		zap.Int("blocks", blocks.Length()),
		zap.Int("papers", len(papers)))
	return papers
}

// ExtractReader parses HTML from r and extracts it. The only error is an
// unparseable document; per-block problems never surface here.
func (e *Extractor) ExtractReader(r io.Reader) ([]types.PaperRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}
	return e.Extract(doc), nil
}

// extractBlock converts a single result block. A panic raised while walking
// the block's markup is reported as an error for that block only.
func (e *Extractor) extractBlock(block *goquery.Selection) (paper types.PaperRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extracting result block: %v", r)
		}
	}()

	paper.Title = UnknownTitle
	if title, ok := first(block, e.sel.Title); ok {
		paper.Title = strings.TrimSpace(title.Text())
	}

	paper.Authors = []string{}
	if byline, ok := first(block, e.sel.Byline); ok {
		paper.PublicationInfo = byline.Text()
		paper.Authors = ParseAuthors(paper.PublicationInfo)
	}

	if snippet, ok := first(block, e.sel.Snippet); ok {
		paper.Snippet = strings.TrimSpace(snippet.Text())
	}

	if link, ok := e.citedByLink(block); ok {
		paper.CitedBy = citationCount(link.Text())
	}

	return paper, nil
}

// citedByLink returns the first anchor whose text contains "Cited by ".
func (e *Extractor) citedByLink(block *goquery.Selection) (*goquery.Selection, bool) {
	var found *goquery.Selection
	block.Find(e.sel.Link).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.Contains(a.Text(), citedByMarker) {
			found = a
			return false
		}
		return true
	})
	return found, found != nil
}

// first returns the first element under s matching selector. Absence is
// reported through ok rather than an empty selection.
func first(s *goquery.Selection, selector string) (*goquery.Selection, bool) {
	match := s.Find(selector).First()
	if match.Length() == 0 {
		return nil, false
	}
	return match, true
}

// ParseAuthors splits a byline into author names.
//
// Rules, applied literally:
//   - an empty byline yields no authors
//   - the byline is cut at the first " - "; only the part before it is used
//   - that part is split on "," and every piece is trimmed
//
// "A Smith, B Jones - Nature, 2020 - nature.com" → ["A Smith", "B Jones"].
// Names are not otherwise normalised; an ellipsis or an empty piece is kept
// as-is.
func ParseAuthors(byline string) []string {
	if byline == "" {
		return []string{}
	}
	authorPart, _, _ := strings.Cut(byline, bylineSeparator)
	pieces := strings.Split(authorPart, authorSeparator)
	authors := make([]string, 0, len(pieces))
	for _, p := range pieces {
		authors = append(authors, strings.TrimSpace(p))
	}
	return authors
}

// ParseCitedBy returns the integer following "Cited by " in text. A missing
// marker, missing number, non-numeric suffix or negative value gives 0.
func ParseCitedBy(text string) int {
	_, after, ok := strings.Cut(text, citedByMarker)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(after))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// citationCount is swapped in tests to exercise the skip path.
var citationCount = ParseCitedBy
