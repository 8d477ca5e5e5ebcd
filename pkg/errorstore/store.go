// Package errorstore holds the field→message mapping produced by the most
// recent validation pass. A Store is scoped to one request/response cycle and
// is not safe for concurrent mutation.
package errorstore

import (
	"sort"
	"strings"
)

// Store is an insertion-ordered mapping from field name to error message,
// plus any form-level messages that could not be tied to a field.
type Store struct {
	fields   []string
	messages map[string]string
	form     []string
}

// New creates a store seeded with errs. Map keys are inserted in lexical
// order; use Add to control ordering explicitly.
func New(errs map[string]string) *Store {
	s := &Store{messages: make(map[string]string)}
	s.Merge(errs)
	return s
}

// Add sets the message for field. Existing fields keep their position.
// Blank fields or messages are ignored.
func (s *Store) Add(field, message string) *Store {
	field = strings.TrimSpace(field)
	message = strings.TrimSpace(message)
	if field == "" || message == "" {
		return s
	}
	if s.messages == nil {
		s.messages = make(map[string]string)
	}
	if _, exists := s.messages[field]; !exists {
		s.fields = append(s.fields, field)
	}
	s.messages[field] = message
	return s
}

// AddForm records a form-level message, skipping blanks and duplicates.
func (s *Store) AddForm(messages ...string) *Store {
	s.form = normalizeMessages(append(s.form, messages...))
	return s
}

// Replace discards the current field errors and stores errs.
func (s *Store) Replace(errs map[string]string) *Store {
	s.fields = nil
	s.messages = make(map[string]string, len(errs))
	return s.Merge(errs)
}

// Merge layers errs on top of the current errors: existing fields keep their
// position and take the new message, new fields are appended.
func (s *Store) Merge(errs map[string]string) *Store {
	for _, field := range sortedKeys(errs) {
		s.Add(field, errs[field])
	}
	return s
}

// MergeStore layers other on top of s, preserving other's ordering for new
// fields. Form-level messages are appended.
func (s *Store) MergeStore(other *Store) *Store {
	if other == nil {
		return s
	}
	for _, field := range other.fields {
		s.Add(field, other.messages[field])
	}
	return s.AddForm(other.form...)
}

// Get returns the message for field.
func (s *Store) Get(field string) (string, bool) {
	if s == nil || s.messages == nil {
		return "", false
	}
	message, ok := s.messages[field]
	return message, ok
}

// Has reports whether field has an error.
func (s *Store) Has(field string) bool {
	_, ok := s.Get(field)
	return ok
}

// Fields returns the field names in insertion order.
func (s *Store) Fields() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.fields...)
}

// Messages returns the field messages in insertion order.
func (s *Store) Messages() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.fields))
	for _, field := range s.fields {
		out = append(out, s.messages[field])
	}
	return out
}

// Form returns form-level messages.
func (s *Store) Form() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.form...)
}

// Map returns a copy of the field errors.
func (s *Store) Map() map[string]string {
	out := make(map[string]string, s.Len())
	if s == nil {
		return out
	}
	for field, message := range s.messages {
		out[field] = message
	}
	return out
}

// Len returns the number of field errors.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Empty reports whether the store holds no field or form errors.
func (s *Store) Empty() bool {
	return s == nil || (len(s.fields) == 0 && len(s.form) == 0)
}

// Clone returns an independent copy.
func (s *Store) Clone() *Store {
	out := &Store{messages: make(map[string]string, s.Len())}
	return out.MergeStore(s)
}

// Reset removes every error.
func (s *Store) Reset() {
	s.fields = nil
	s.messages = make(map[string]string)
	s.form = nil
}

func sortedKeys(in map[string]string) []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
