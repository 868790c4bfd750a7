package candidate

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrOutOfRange is returned when an original index is not in the store.
var ErrOutOfRange = errors.New("candidate index out of range")

// Store owns the immutable candidate list together with the lowercase
// search keys used by the ranking engine.
type Store struct {
	items []Item
	keys  []string
}

// NewStore copies items and precomputes their search keys. Display names
// are NFC-normalized so composed and decomposed input rank identically.
func NewStore(items []Item) *Store {
	s := &Store{
		items: make([]Item, len(items)),
		keys:  make([]string, len(items)),
	}
	for i, item := range items {
		item.Name = norm.NFC.String(item.Name)
		s.items[i] = item
		s.keys[i] = strings.ToLower(item.Name)
	}
	return s
}

// Len returns the number of candidates.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// KeyOf returns the lowercase search key of candidate i.
func (s *Store) KeyOf(i int) (string, error) {
	if i < 0 || i >= s.Len() {
		return "", fmt.Errorf("key %d of %d: %w", i, s.Len(), ErrOutOfRange)
	}
	return s.keys[i], nil
}

// ItemOf returns candidate i.
func (s *Store) ItemOf(i int) (Item, error) {
	if i < 0 || i >= s.Len() {
		return Item{}, fmt.Errorf("item %d of %d: %w", i, s.Len(), ErrOutOfRange)
	}
	return s.items[i], nil
}
