package vocab

import (
	"fmt"
	"maps"
	"slices"
)

// QDPIGroup is the name of the mandatory special-token group holding the
// ordered QDPI marker strings.
const QDPIGroup = "qdpi_tokens"

// Store is an immutable vocabulary: token strings mapped to ids, named
// groups of reserved special tokens, and opaque model metadata.
//
// A Store never changes after construction, so one instance can be shared
// by any number of goroutines without locking.
type Store struct {
	entries  map[string]int
	byID     map[int]string
	groups   map[string][]string
	special  map[string]struct{}
	metadata map[string]any
	pieces   any
	source   string
}

// New builds a Store from already decoded parts. Ids must be non-negative.
// The inputs are copied; later changes to them do not affect the Store.
func New(entries map[string]int, specialGroups map[string][]string, metadata map[string]any) (*Store, error) {
	s := &Store{
		entries:  make(map[string]int, len(entries)),
		byID:     make(map[int]string, len(entries)),
		groups:   make(map[string][]string, len(specialGroups)),
		special:  make(map[string]struct{}),
		metadata: maps.Clone(metadata),
	}
	if s.metadata == nil {
		s.metadata = map[string]any{}
	}

	// Sorted iteration keeps the reverse index deterministic when ids repeat.
	for _, tok := range slices.Sorted(maps.Keys(entries)) {
		id := entries[tok]
		if id < 0 {
			return nil, &LoadError{
				Field: "vocab",
				Err:   fmt.Errorf("token %q has negative id %d", tok, id),
			}
		}
		s.entries[tok] = id
		if _, taken := s.byID[id]; !taken {
			s.byID[id] = tok
		}
	}

	for name, toks := range specialGroups {
		s.groups[name] = slices.Clone(toks)
		for _, tok := range toks {
			s.special[tok] = struct{}{}
		}
	}

	return s, nil
}

// Size returns the number of vocabulary entries.
func (s *Store) Size() int {
	return len(s.entries)
}

// ID returns the id of token and whether it is a vocabulary entry.
func (s *Store) ID(token string) (int, bool) {
	id, ok := s.entries[token]
	return id, ok
}

// Token returns the token string for id. When several tokens share an id
// the lexically smallest one is returned.
func (s *Store) Token(id int) (string, bool) {
	tok, ok := s.byID[id]
	return tok, ok
}

// IsSpecial reports whether token belongs to any special-token group.
func (s *Store) IsSpecial(token string) bool {
	_, ok := s.special[token]
	return ok
}

// QDPITokens returns the QDPI marker strings in their declared order.
func (s *Store) QDPITokens() []string {
	return slices.Clone(s.groups[QDPIGroup])
}

// SpecialGroup returns the tokens of the named group in declared order.
func (s *Store) SpecialGroup(name string) []string {
	return slices.Clone(s.groups[name])
}

// SpecialGroups returns the names of all special-token groups, sorted.
func (s *Store) SpecialGroups() []string {
	return slices.Sorted(maps.Keys(s.groups))
}

// SpecialTokens returns every distinct special token, sorted.
func (s *Store) SpecialTokens() []string {
	return slices.Sorted(maps.Keys(s.special))
}

// Metadata returns a shallow copy of the model_info mapping.
func (s *Store) Metadata() map[string]any {
	return maps.Clone(s.metadata)
}

// Pieces returns the auxiliary piece data exactly as decoded. Callers must
// treat it as read-only.
func (s *Store) Pieces() any {
	return s.pieces
}

// Source returns the path the store was loaded from, or "" if it was built
// in memory.
func (s *Store) Source() string {
	return s.source
}
