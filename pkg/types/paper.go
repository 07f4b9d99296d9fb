// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for scholar-tags.
// PaperRecord is produced by extraction; TaggedPaper by the tag filter;
// AnnotatedPaper is the view returned to callers after annotation.
package types

// PaperRecord holds the metadata extracted from one search result block.
type PaperRecord struct {
	// Title is the result title, or "Unknown Title" when the page has none.
	Title string `json:"title" yaml:"title"`

	// Authors lists the raw author names in byline order.
	Authors []string `json:"authors" yaml:"authors"`

	// Snippet is the abstract excerpt shown under the result (may be empty).
	Snippet string `json:"snippet" yaml:"snippet"`

	// CitedBy is the citation count from the "Cited by N" link, 0 if absent.
	CitedBy int `json:"cited_by" yaml:"cited_by"`

	// PublicationInfo is the full raw byline text (authors, venue, year, host).
	PublicationInfo string `json:"publication_info" yaml:"publication_info"`
}

// MatchingAuthor records an author whose tags intersect a tag filter.
type MatchingAuthor struct {
	Name string `json:"name" yaml:"name"`

	// Tags is the author's full tag list at filter time.
	Tags []string `json:"tags" yaml:"tags"`

	// MatchingTags is the subset of Tags that was selected, in Tags order.
	MatchingTags []string `json:"matching_tags" yaml:"matching_tags"`
}

// TaggedPaper is a paper that passed through the tag filter. MatchingAuthors
// is only set when a non-empty filter selected the paper.
type TaggedPaper struct {
	PaperRecord     `yaml:",inline"`
	MatchingAuthors []MatchingAuthor `json:"matching_authors,omitempty" yaml:"matching_authors,omitempty"`
}

// AuthorTags pairs an author name with the tags assigned to it.
type AuthorTags struct {
	Name string   `json:"name" yaml:"name"`
	Tags []string `json:"tags" yaml:"tags"`
}

// AnnotatedPaper is a paper whose authors carry a snapshot of their tags.
type AnnotatedPaper struct {
	Title           string           `json:"title" yaml:"title"`
	Authors         []AuthorTags     `json:"authors" yaml:"authors"`
	Snippet         string           `json:"snippet" yaml:"snippet"`
	CitedBy         int              `json:"cited_by" yaml:"cited_by"`
	PublicationInfo string           `json:"publication_info" yaml:"publication_info"`
	MatchingAuthors []MatchingAuthor `json:"matching_authors,omitempty" yaml:"matching_authors,omitempty"`
}

// Papers wraps records for the tag filter without selecting anything.
func Papers(records []PaperRecord) []TaggedPaper {
	out := make([]TaggedPaper, len(records))
	for i, r := range records {
		out[i] = TaggedPaper{PaperRecord: r}
	}
	return out
}
