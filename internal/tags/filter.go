// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tags

import (
	"github.com/pdiddy/scholar-tags/pkg/types"
)

// FilterPapersByTags keeps the papers that have at least one author tagged
// with one of selected.
//
// With no selected tags every paper is returned unchanged. Otherwise a
// paper's authors are checked in order and the paper is kept as soon as one
// of them matches. A kept paper then gets MatchingAuthors built from all of
// its authors, not only the one that decided inclusion, in author order.
// Papers without authors never match.
func (s *Store) FilterPapersByTags(papers []types.PaperRecord, selected []string) []types.TaggedPaper {
	if len(selected) == 0 {
		return types.Papers(papers)
	}

	want := make(map[string]bool, len(selected))
	for _, t := range selected {
		want[t] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := []types.TaggedPaper{}
	for _, p := range papers {
		for _, author := range p.Authors {
			if !anySelected(s.tags[author], want) {
				continue
			}
			filtered = append(filtered, types.TaggedPaper{
				PaperRecord:     p,
				MatchingAuthors: s.matchingAuthors(p.Authors, want),
			})
			break
		}
	}
	return filtered
}

// matchingAuthors lists every author with at least one selected tag.
func (s *Store) matchingAuthors(authors []string, want map[string]bool) []types.MatchingAuthor {
	var out []types.MatchingAuthor
	for _, author := range authors {
		tags := s.tagsLocked(author)
		var matching []string
		for _, t := range tags {
			if want[t] {
				matching = append(matching, t)
			}
		}
		if len(matching) == 0 {
			continue
		}
		out = append(out, types.MatchingAuthor{
			Name:         author,
			Tags:         tags,
			MatchingTags: matching,
		})
	}
	return out
}

func anySelected(tags []string, want map[string]bool) bool {
	for _, t := range tags {
		if want[t] {
			return true
		}
	}
	return false
}

// Annotate rewrites each paper's authors into name/tags pairs using the
// tags held right now. It runs whether or not a filter was applied.
func (s *Store) Annotate(papers []types.TaggedPaper) []types.AnnotatedPaper {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.AnnotatedPaper, len(papers))
	for i, p := range papers {
		authors := make([]types.AuthorTags, len(p.Authors))
		for j, name := range p.Authors {
			authors[j] = types.AuthorTags{Name: name, Tags: s.tagsLocked(name)}
		}
		out[i] = types.AnnotatedPaper{
			Title:           p.Title,
			Authors:         authors,
			Snippet:         p.Snippet,
			CitedBy:         p.CitedBy,
			PublicationInfo: p.PublicationInfo,
			MatchingAuthors: p.MatchingAuthors,
		}
	}
	return out
}
