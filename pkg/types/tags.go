// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TagMapping maps an author name to its tags in insertion order. Keys are
// exact, case-sensitive names. A key never maps to an empty slice.
type TagMapping map[string][]string

// Clone returns a deep copy of m. A nil mapping clones to an empty one.
func (m TagMapping) Clone() TagMapping {
	out := make(TagMapping, len(m))
	for author, tags := range m {
		out[author] = append([]string(nil), tags...)
	}
	return out
}
