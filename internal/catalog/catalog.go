// Package catalog holds the fixed mapping from document identifier to the
// source URL it was scraped from. The index is read once at startup and is
// immutable afterwards; a reload requires a process restart.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

type Store struct {
	refs map[string]string
	ids  []string
}

// Load reads the {identifier: sourceURL} index file produced by the gen step.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog index: %w", err)
	}

	var refs map[string]string
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("decode catalog index %s: %w", path, err)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("catalog index %s contains no entries", path)
	}

	ids := make([]string, 0, len(refs))
	for id, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			return nil, fmt.Errorf("catalog entry %q has an empty source URL", id)
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &Store{refs: refs, ids: ids}, nil
}

// Identifiers returns every document identifier in a stable order.
func (s *Store) Identifiers() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Lookup returns the source URL for an identifier, or "" when unknown.
func (s *Store) Lookup(identifier string) string {
	return s.refs[identifier]
}

func (s *Store) Len() int {
	return len(s.ids)
}
