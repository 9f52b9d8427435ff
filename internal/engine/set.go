package engine

import (
	"encoding/json"
	"slices"
)

// OrderedSet is a write-once set of strings that remembers insertion order.
// Members can only be added through the engine's own transitions.
type OrderedSet struct {
	items []string
}

// Has reports membership.
func (s OrderedSet) Has(v string) bool { return slices.Contains(s.items, v) }

// Len returns the number of members.
func (s OrderedSet) Len() int { return len(s.items) }

// Items returns the members in insertion order.
func (s OrderedSet) Items() []string { return slices.Clone(s.items) }

func (s *OrderedSet) add(v string) bool {
	if s.Has(v) {
		return false
	}
	s.items = append(s.items, v)
	return true
}

func (s OrderedSet) clone() OrderedSet {
	return OrderedSet{items: slices.Clone(s.items)}
}

func (s OrderedSet) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

func (s *OrderedSet) UnmarshalJSON(b []byte) error {
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	s.items = nil
	for _, it := range items {
		s.add(it)
	}
	return nil
}
