package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/openkraft/stylelint-aot/internal/domain"
)

// DefaultSize is the number of transform outputs kept in memory.
const DefaultSize = 4096

// Store is an in-memory LRU implementation of domain.OutputCache. Keys are
// content hashes, so stale entries simply age out.
type Store struct {
	entries *lru.Cache[string, domain.CachedOutput]
}

// New creates a Store holding at most size entries.
func New(size int) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, domain.CachedOutput](size)
	if err != nil {
		return nil, err
	}
	return &Store{entries: entries}, nil
}

// Get returns the cached output for key.
func (s *Store) Get(key string) (domain.CachedOutput, bool) {
	return s.entries.Get(key)
}

// Put stores out under key, evicting the least recently used entry when full.
func (s *Store) Put(key string, out domain.CachedOutput) {
	s.entries.Add(key, out)
}

// Len reports the number of cached outputs.
func (s *Store) Len() int {
	return s.entries.Len()
}

// Purge drops every cached output.
func (s *Store) Purge() {
	s.entries.Purge()
}
