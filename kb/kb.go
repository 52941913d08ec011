// Package kb provides knowledge bases: named, read-only key/value tables
// used to normalize harvested metadata (for example journal abbreviations).
package kb

import (
	"errors"
	"fmt"
	"sort"
)

// Journals is the name of the journal-abbreviation knowledge base.
const Journals = "journals"

// ErrNotFound is returned when a knowledge base is not available.
var ErrNotFound = errors.New("knowledge base not found")

// Provider returns knowledge bases by name.
type Provider interface {
	Mapping(name string) (Mapping, error)
}

// Mapping is a single knowledge base. It must not be modified once it has
// been handed to a Provider.
type Mapping map[string]string

// Lookup returns the value stored under key.
func (m Mapping) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys returns the mapping keys in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KnowledgeBase is a named mapping as stored on disk.
type KnowledgeBase struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Entries     Mapping `yaml:"entries"`
}

// Set holds loaded knowledge bases keyed by name.
type Set struct {
	kbs map[string]*KnowledgeBase
}

var _ Provider = (*Set)(nil)

// NewSet creates an empty knowledge-base set.
func NewSet() *Set {
	return &Set{kbs: make(map[string]*KnowledgeBase)}
}

// Register adds a knowledge base, replacing any with the same name.
func (s *Set) Register(kb *KnowledgeBase) {
	if kb.Entries == nil {
		kb.Entries = Mapping{}
	}
	s.kbs[kb.Name] = kb
}

// Get retrieves a knowledge base by name.
func (s *Set) Get(name string) (*KnowledgeBase, bool) {
	kb, ok := s.kbs[name]
	return kb, ok
}

// Mapping implements Provider.
func (s *Set) Mapping(name string) (Mapping, error) {
	kb, ok := s.kbs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return kb.Entries, nil
}

// List returns all knowledge-base names in sorted order.
func (s *Set) List() []string {
	names := make([]string, 0, len(s.kbs))
	for name := range s.kbs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
