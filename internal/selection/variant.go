package selection

import (
	"github.com/tahmidrayat/clickbazaar-backend/internal/catalog"
)

// SelectedVariant snapshots one active item within a group.
type SelectedVariant struct {
	Group string
	Item  catalog.VariantItem
}

// VariantSet is the substitution-model selection store: at most one
// active item per group, with insertion order preserved. Insertion order
// drives price and image resolution, so replacing a group's item keeps
// the group's original position while deselect-then-reselect moves it
// to the end.
type VariantSet struct {
	entries []SelectedVariant
}

// NewVariantSet returns an empty selection set.
func NewVariantSet() *VariantSet {
	return &VariantSet{}
}

// Toggle deselects the group when the active item carries the same value,
// otherwise sets or replaces the group's entry with the given item.
func (s *VariantSet) Toggle(group string, item catalog.VariantItem) {
	for i, entry := range s.entries {
		if entry.Group != group {
			continue
		}
		if entry.Item.Value == item.Value {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
		s.entries[i].Item = item
		return
	}
	s.entries = append(s.entries, SelectedVariant{Group: group, Item: item})
}

// Selected returns the active item for the group, if any.
func (s *VariantSet) Selected(group string) (catalog.VariantItem, bool) {
	for _, entry := range s.entries {
		if entry.Group == group {
			return entry.Item, true
		}
	}
	return catalog.VariantItem{}, false
}

// Entries returns the active selections in insertion order.
func (s *VariantSet) Entries() []SelectedVariant {
	out := make([]SelectedVariant, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len reports the number of active groups.
func (s *VariantSet) Len() int {
	return len(s.entries)
}

// Clone returns an independent copy of the set.
func (s *VariantSet) Clone() *VariantSet {
	clone := &VariantSet{entries: make([]SelectedVariant, len(s.entries))}
	copy(clone.entries, s.entries)
	return clone
}
