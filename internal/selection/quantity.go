package selection

import (
	"github.com/tahmidrayat/clickbazaar-backend/internal/catalog"
)

// BaseVariantGroup labels the synthetic selection that anchors
// quantity-only purchases of the bare product.
const BaseVariantGroup = "base"

// QuantityEntry is one accumulated line: a (group, item) pair with its
// quantity. The base entry survives at quantity zero.
type QuantityEntry struct {
	Group    string
	Item     catalog.VariantItem
	Quantity int
	IsBase   bool
}

// QuantityList is the accumulation-model selection store used on the
// quick-buy flow. Uniqueness is on (group, item value); adding the same
// pair again accumulates quantity instead of duplicating the line.
type QuantityList struct {
	entries []QuantityEntry
}

// NewQuantityList seeds the store. With a product it creates the single
// base entry tied to the product's stock. Without one, it seeds the
// first item of each supplied default group at quantity one.
func NewQuantityList(product *catalog.Product, defaults []catalog.VariantGroup) *QuantityList {
	list := &QuantityList{}
	if product != nil {
		stock := product.StockQuantity
		list.entries = append(list.entries, QuantityEntry{
			Group:    BaseVariantGroup,
			Item:     catalog.VariantItem{Value: product.Name, Stock: &stock},
			Quantity: 1,
			IsBase:   true,
		})
		return list
	}
	for _, group := range defaults {
		if len(group.Items) == 0 {
			continue
		}
		list.entries = append(list.entries, QuantityEntry{
			Group:    group.Name,
			Item:     group.Items[0],
			Quantity: 1,
		})
	}
	return list
}

// Add increments the quantity of an existing (group, value) line or
// appends a new line at quantity one.
func (l *QuantityList) Add(group string, item catalog.VariantItem) {
	for i, entry := range l.entries {
		if entry.Group == group && entry.Item.Value == item.Value {
			l.entries[i].Quantity++
			return
		}
	}
	l.entries = append(l.entries, QuantityEntry{Group: group, Item: item, Quantity: 1})
}

// Remove deletes the matching line. Removing the sole base-variant line
// when it is the only line in the collection is a no-op.
func (l *QuantityList) Remove(group, value string) {
	for i, entry := range l.entries {
		if entry.Group != group || entry.Item.Value != value {
			continue
		}
		if entry.IsBase && len(l.entries) == 1 {
			return
		}
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
		return
	}
}

// UpdateQuantity sets the line's quantity. Base lines clamp at zero and
// stay present; non-base lines at zero or below are deleted.
func (l *QuantityList) UpdateQuantity(group, value string, quantity int) {
	for i, entry := range l.entries {
		if entry.Group != group || entry.Item.Value != value {
			continue
		}
		if entry.IsBase {
			if quantity < 0 {
				quantity = 0
			}
			l.entries[i].Quantity = quantity
			return
		}
		if quantity <= 0 {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
		l.entries[i].Quantity = quantity
		return
	}
}

// Clear empties the collection.
func (l *QuantityList) Clear() {
	l.entries = nil
}

// TotalQuantity sums all line quantities, floored at one: order totals
// and display always price at least a single unit even when every line
// has been reduced to zero.
func (l *QuantityList) TotalQuantity() int {
	total := 0
	for _, entry := range l.entries {
		total += entry.Quantity
	}
	if total < 1 {
		return 1
	}
	return total
}

// Quantity returns the raw quantity of a line, zero when absent.
func (l *QuantityList) Quantity(group, value string) int {
	for _, entry := range l.entries {
		if entry.Group == group && entry.Item.Value == value {
			return entry.Quantity
		}
	}
	return 0
}

// Entries returns the lines in list order.
func (l *QuantityList) Entries() []QuantityEntry {
	out := make([]QuantityEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Selections projects the lines as selected variants in list order, for
// price and image resolution.
func (l *QuantityList) Selections() []SelectedVariant {
	out := make([]SelectedVariant, 0, len(l.entries))
	for _, entry := range l.entries {
		if entry.IsBase {
			continue
		}
		out = append(out, SelectedVariant{Group: entry.Group, Item: entry.Item})
	}
	return out
}

// Len reports the number of lines, base included.
func (l *QuantityList) Len() int {
	return len(l.entries)
}

// Clone returns an independent copy of the list.
func (l *QuantityList) Clone() *QuantityList {
	clone := &QuantityList{entries: make([]QuantityEntry, len(l.entries))}
	copy(clone.entries, l.entries)
	return clone
}
