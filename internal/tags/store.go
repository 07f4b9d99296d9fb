// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tags owns the author → tags mapping and the tag filter applied to
// search results.
//
// The Store is loaded once from a Persister and kept in memory. Every
// mutation is saved before the call returns; if the save fails the
// in-memory mapping is left as it was, so a mutation is either durable or
// did not happen. Mutations are serialised by a write lock covering
// read-modify-write-save. Readers see either the mapping before or after a
// mutation, never a partial one.
package tags

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/scholar-tags/internal/metrics"
	"github.com/pdiddy/scholar-tags/pkg/types"
)

// ErrAuthorTagRequired rejects a mutation whose author or tag is blank.
var ErrAuthorTagRequired = errors.New("author and tag are required")

// ValidateMutation trims author and tag and rejects blank values. Callers at
// the CLI and HTTP boundaries use it before reaching the Store.
func ValidateMutation(author, tag string) (string, string, error) {
	author, tag = strings.TrimSpace(author), strings.TrimSpace(tag)
	if author == "" || tag == "" {
		return "", "", ErrAuthorTagRequired
	}
	return author, tag, nil
}

// Store holds the author tag mapping.
type Store struct {
	mu        sync.RWMutex
	tags      types.TagMapping
	persister Persister
	logger    *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore loads the mapping from p. A load failure (missing or corrupt
// storage) is logged and the store starts empty.
func NewStore(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	m, err := p.Load()
	if err != nil {
		s.logger.Warn("could not load author tags, starting empty", zap.Error(err))
		m = nil
	}
	s.tags = sanitize(m)
	s.logger.Debug("author tags loaded", zap.Int("authors", len(s.tags)))
	return s
}

// Close releases the persister if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.persister.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// sanitize restores the mapping invariants on loaded data: no empty tag
// lists, no blank or duplicate tags per author.
func sanitize(m types.TagMapping) types.TagMapping {
	out := make(types.TagMapping, len(m))
	for author, tags := range m {
		var clean []string
		for _, t := range tags {
			if t == "" || slices.Contains(clean, t) {
				continue
			}
			clean = append(clean, t)
		}
		if len(clean) > 0 {
			out[author] = clean
		}
	}
	return out
}

// AddTag appends tag to author's tags. Blank input is ignored and adding a
// tag the author already has changes nothing.
func (s *Store) AddTag(author, tag string) error {
	author, tag = strings.TrimSpace(author), strings.TrimSpace(tag)
	if author == "" || tag == "" {
		metrics.TagMutations.WithLabelValues("add", "noop").Inc()
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.tags[author]
	if slices.Contains(current, tag) {
		metrics.TagMutations.WithLabelValues("add", "noop").Inc()
		return nil
	}

	updated := make([]string, len(current), len(current)+1)
	copy(updated, current)
	updated = append(updated, tag)

	if err := s.commit(author, updated); err != nil {
		metrics.TagMutations.WithLabelValues("add", "error").Inc()
		return err
	}
	metrics.TagMutations.WithLabelValues("add", "changed").Inc()
	s.logger.Info("tag added", zap.String("author", author), zap.String("tag", tag))
	return nil
}

// RemoveTag removes tag from author's tags. Removing the last tag deletes
// the author. Unknown authors or tags are ignored.
func (s *Store) RemoveTag(author, tag string) error {
	author, tag = strings.TrimSpace(author), strings.TrimSpace(tag)

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.tags[author]
	idx := slices.Index(current, tag)
	if idx < 0 {
		metrics.TagMutations.WithLabelValues("remove", "noop").Inc()
		return nil
	}

	var updated []string
	if len(current) > 1 {
		updated = make([]string, 0, len(current)-1)
		updated = append(updated, current[:idx]...)
		updated = append(updated, current[idx+1:]...)
	}

	if err := s.commit(author, updated); err != nil {
		metrics.TagMutations.WithLabelValues("remove", "error").Inc()
		return err
	}
	metrics.TagMutations.WithLabelValues("remove", "changed").Inc()
	s.logger.Info("tag removed", zap.String("author", author), zap.String("tag", tag))
	return nil
}

// commit saves a copy of the mapping with author set to tags (or deleted
// when tags is empty) and swaps it in only after the save succeeds. Tag
// slices are never modified in place, so the copy can share them.
// Callers hold s.mu for writing.
func (s *Store) commit(author string, tags []string) error {
	next := make(types.TagMapping, len(s.tags)+1)
	for a, t := range s.tags {
		next[a] = t
	}
	if len(tags) == 0 {
		delete(next, author)
	} else {
		next[author] = tags
	}

	if err := s.persister.Save(next); err != nil {
		return fmt.Errorf("saving author tags: %w", err)
	}
	s.tags = next
	return nil
}

// Tags returns author's tags in insertion order, or an empty slice.
func (s *Store) Tags(author string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tagsLocked(author)
}

func (s *Store) tagsLocked(author string) []string {
	return append([]string{}, s.tags[author]...)
}

// AllTags returns every tag in use, deduplicated and sorted.
func (s *Store) AllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	all := []string{}
	for _, tags := range s.tags {
		for _, t := range tags {
			if !seen[t] {
				seen[t] = true
				all = append(all, t)
			}
		}
	}
	sort.Strings(all)
	return all
}

// Mapping returns a copy of the whole mapping.
func (s *Store) Mapping() types.TagMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tags.Clone()
}
