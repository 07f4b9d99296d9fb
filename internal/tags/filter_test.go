// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-tags/pkg/types"
)

func samplePapers() []types.PaperRecord {
	return []types.PaperRecord{
		{Title: "P1", Authors: []string{"Alice", "Carol"}},
		{Title: "P2", Authors: []string{"Bob"}},
		{Title: "P3", Authors: []string{"Carol"}},
	}
}

func TestFilterPapersByTagsEmptySelectionIsIdentity(t *testing.T) {
	s, _ := newTestStore(t, types.TagMapping{"Alice": {"nlp"}})
	papers := samplePapers()

	for _, selected := range [][]string{nil, {}} {
		got := s.FilterPapersByTags(papers, selected)
		require.Len(t, got, len(papers))
		for i := range papers {
			assert.Equal(t, papers[i], got[i].PaperRecord)
			assert.Nil(t, got[i].MatchingAuthors)
		}
	}
}

func TestFilterPapersByTagsSingleMatch(t *testing.T) {
	s, _ := newTestStore(t, types.TagMapping{"Alice": {"nlp"}, "Bob": {"vision"}})

	got := s.FilterPapersByTags(samplePapers(), []string{"nlp"})

	require.Len(t, got, 1)
	assert.Equal(t, "P1", got[0].Title)
	assert.Equal(t, []types.MatchingAuthor{
		{Name: "Alice", Tags: []string{"nlp"}, MatchingTags: []string{"nlp"}},
	}, got[0].MatchingAuthors)
}

func TestFilterPapersByTagsAnnotatesEveryMatchingAuthor(t *testing.T) {
	s, _ := newTestStore(t, types.TagMapping{
		"Alice": {"nlp", "theory"},
		"Bob":   {"ml"},
		"Dave":  {"systems", "nlp", "ml"},
	})
	papers := []types.PaperRecord{
		{Title: "Shared", Authors: []string{"Alice", "Carol", "Bob", "Dave"}},
	}

	got := s.FilterPapersByTags(papers, []string{"ml", "nlp"})

	require.Len(t, got, 1, "a paper is included at most once")
	assert.Equal(t, []types.MatchingAuthor{
		{Name: "Alice", Tags: []string{"nlp", "theory"}, MatchingTags: []string{"nlp"}},
		{Name: "Bob", Tags: []string{"ml"}, MatchingTags: []string{"ml"}},
		{Name: "Dave", Tags: []string{"systems", "nlp", "ml"}, MatchingTags: []string{"nlp", "ml"}},
	}, got[0].MatchingAuthors)
}

func TestFilterPapersByTagsLaterAuthorMatches(t *testing.T) {
	s, _ := newTestStore(t, types.TagMapping{"Bob": {"vision"}})
	papers := []types.PaperRecord{
		{Title: "P", Authors: []string{"Alice", "Carol", "Bob"}},
	}

	got := s.FilterPapersByTags(papers, []string{"vision"})

	require.Len(t, got, 1)
	assert.Equal(t, []types.MatchingAuthor{
		{Name: "Bob", Tags: []string{"vision"}, MatchingTags: []string{"vision"}},
	}, got[0].MatchingAuthors)
}

func TestFilterPapersByTagsNoMatch(t *testing.T) {
	s, _ := newTestStore(t, types.TagMapping{"Alice": {"nlp"}})

	got := s.FilterPapersByTags(samplePapers(), []string{"robotics"})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterPapersByTagsZeroAuthorsNeverMatch(t *testing.T) {
	s, _ := newTestStore(t, types.TagMapping{"Alice": {"nlp"}})
	papers := []types.PaperRecord{
		{Title: "Anonymous", Authors: []string{}},
		{Title: "Tagged", Authors: []string{"Alice"}},
	}

	got := s.FilterPapersByTags(papers, []string{"nlp"})

	require.Len(t, got, 1)
	assert.Equal(t, "Tagged", got[0].Title)
}

func TestFilterPapersByTagsPreservesOrder(t *testing.T) {
	s, _ := newTestStore(t, types.TagMapping{"Alice": {"nlp"}, "Bob": {"nlp"}})
	papers := []types.PaperRecord{
		{Title: "B", Authors: []string{"Bob"}},
		{Title: "skip", Authors: []string{"Carol"}},
		{Title: "A", Authors: []string{"Alice"}},
	}

	got := s.FilterPapersByTags(papers, []string{"nlp"})

	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Title)
	assert.Equal(t, "A", got[1].Title)
}

func TestAnnotate(t *testing.T) {
	s, _ := newTestStore(t, types.TagMapping{"Alice": {"nlp", "ml"}})

	papers := types.Papers([]types.PaperRecord{
		{Title: "P1", Authors: []string{"Alice", "Carol"}, Snippet: "s", CitedBy: 4, PublicationInfo: "Alice, Carol - J"},
		{Title: "P2", Authors: []string{}},
	})
	got := s.Annotate(papers)

	require.Len(t, got, 2)
	assert.Equal(t, types.AnnotatedPaper{
		Title: "P1",
		Authors: []types.AuthorTags{
			{Name: "Alice", Tags: []string{"nlp", "ml"}},
			{Name: "Carol", Tags: []string{}},
		},
		Snippet:         "s",
		CitedBy:         4,
		PublicationInfo: "Alice, Carol - J",
	}, got[0])
	assert.Empty(t, got[1].Authors)
}

func TestAnnotateKeepsMatchingAuthors(t *testing.T) {
	s, _ := newTestStore(t, types.TagMapping{"Alice": {"nlp"}})

	filtered := s.FilterPapersByTags(samplePapers(), []string{"nlp"})
	got := s.Annotate(filtered)

	require.Len(t, got, 1)
	assert.Equal(t, filtered[0].MatchingAuthors, got[0].MatchingAuthors)
}

func TestAnnotateIsSnapshot(t *testing.T) {
	s, _ := newTestStore(t, types.TagMapping{"Alice": {"nlp"}})

	got := s.Annotate(types.Papers([]types.PaperRecord{{Title: "P", Authors: []string{"Alice"}}}))
	require.NoError(t, s.AddTag("Alice", "ml"))

	assert.Equal(t, []string{"nlp"}, got[0].Authors[0].Tags)
}
