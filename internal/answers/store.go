package answers

import (
	"strconv"
	"strings"
)

// Store holds the answers of one survey-filling session.
//
// It is mutated from the UI update loop only, one event at a time, so it
// carries no locking.
type Store struct {
	values map[Key]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{values: make(map[Key]string)}
}

// Set upserts one answer. The value is not checked against the question's
// options.
func (s *Store) Set(category, subcategory string, questionID int, value string) {
	s.values[NewKey(category, subcategory, questionID)] = value
}

// Get returns the stored answer for a question.
func (s *Store) Get(category, subcategory string, questionID int) (string, bool) {
	v, ok := s.values[NewKey(category, subcategory, questionID)]
	return v, ok
}

// ResetSubcategory removes every answer of one subcategory and returns how
// many were removed. A key only matches when the text after the prefix is a
// bare question id, so resetting "A" never touches a sibling named "A_B".
func (s *Store) ResetSubcategory(category, subcategory string) int {
	prefix := SubcategoryPrefix(category, subcategory)
	removed := 0
	for k := range s.values {
		if belongsTo(k, prefix) {
			delete(s.values, k)
			removed++
		}
	}
	return removed
}

// AnsweredIn counts the answers stored for one subcategory.
func (s *Store) AnsweredIn(category, subcategory string) int {
	prefix := SubcategoryPrefix(category, subcategory)
	n := 0
	for k := range s.values {
		if belongsTo(k, prefix) {
			n++
		}
	}
	return n
}

// ClearAll empties the store.
func (s *Store) ClearAll() {
	clear(s.values)
}

// Len returns the number of stored answers.
func (s *Store) Len() int {
	return len(s.values)
}

// Snapshot returns a copy of the answers keyed by their string keys, ready
// to be serialized for submission.
func (s *Store) Snapshot() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[string(k)] = v
	}
	return out
}

func belongsTo(k Key, prefix string) bool {
	rest, ok := strings.CutPrefix(string(k), prefix)
	if !ok {
		return false
	}
	_, err := strconv.Atoi(rest)
	return err == nil
}
