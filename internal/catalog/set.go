package catalog

import (
	"cmp"
	"encoding/json"
	"slices"
)

// Set is an unordered collection of filter values. A nil or empty Set means "no restriction".
type Set[T cmp.Ordered] map[T]struct{}

// NewSet builds a Set from values.
func NewSet[T cmp.Ordered](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Toggle adds v when absent and removes it when present.
func (s Set[T]) Toggle(v T) Set[T] {
	if s == nil {
		s = Set[T]{}
	}
	if _, ok := s[v]; ok {
		delete(s, v)
	} else {
		s[v] = struct{}{}
	}
	return s
}

// Clone copies the set.
func (s Set[T]) Clone() Set[T] {
	out := make(Set[T], len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// Values returns the members in ascending order.
func (s Set[T]) Values() []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes an array into the set.
func (s *Set[T]) UnmarshalJSON(b []byte) error {
	var values []T
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	*s = NewSet(values...)
	return nil
}
