package catalog

import (
	"fmt"
	"strings"
	"sync"

	"apiexception/internal/errors"
)

var (
	// ErrNotFound is returned by Lookup for an unregistered code.
	ErrNotFound = errors.New("catalog: code not found")

	// ErrInvalidEntry is returned when an entry has an empty code.
	ErrInvalidEntry = errors.New("catalog: invalid entry")
)

// DuplicateCodeError is returned when two entries share a code.
type DuplicateCodeError struct {
	Code      string
	Existing  Entry
	Duplicate Entry
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("catalog: duplicate error code %q (%q already registered, rejected %q)",
		e.Code, e.Existing.Message(), e.Duplicate.Message())
}

// Registry is an immutable set of entries keyed by code. It is built once at
// startup and safe for concurrent reads.
type Registry struct {
	entries map[string]Entry
	order   []string
}

// New builds a registry from entries. Any collision fails with a
// *DuplicateCodeError; nothing is overwritten.
func New(entries ...Entry) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]Entry, len(entries)),
		order:   make([]string, 0, len(entries)),
	}
	for _, entry := range entries {
		if err := r.add(entry); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// MustNew is like New but panics on error. Intended for package-level vars.
func MustNew(entries ...Entry) *Registry {
	r, err := New(entries...)
	if err != nil {
		panic(err)
	}

	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return MustNew(Builtins()...)
})

// Default returns the registry holding only the built-in entries.
func Default() *Registry {
	return defaultRegistry()
}

// With returns a new registry containing r's entries followed by extra.
// r itself is left untouched.
func (r *Registry) With(extra ...Entry) (*Registry, error) {
	all := make([]Entry, 0, r.Len()+len(extra))
	all = append(all, r.Entries()...)
	all = append(all, extra...)

	return New(all...)
}

// Lookup returns the entry registered under code.
func (r *Registry) Lookup(code string) (Entry, error) {
	entry, ok := r.entries[code]
	if !ok {
		return Entry{}, errors.Wrapf(ErrNotFound, "code %q", code)
	}

	return entry, nil
}

// Entries returns all entries in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.entries[code])
	}

	return out
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.order)
}

func (r *Registry) add(entry Entry) error {
	if strings.TrimSpace(entry.Code()) == "" {
		return errors.Wrapf(ErrInvalidEntry, "empty code (message %q)", entry.Message())
	}
	if existing, ok := r.entries[entry.Code()]; ok {
		return &DuplicateCodeError{
			Code:      entry.Code(),
			Existing:  existing,
			Duplicate: entry,
		}
	}
	r.entries[entry.Code()] = entry
	r.order = append(r.order, entry.Code())

	return nil
}
