package domain

import (
	"reflect"

	catalog "github.com/pixelpatch/studio-api/internal/catalog/domain"
)

type CartItem struct {
	ID          string
	Category    catalog.Category
	Name        string
	Description string
	Price       catalog.Money
	Options     catalog.Options
	Quantity    int
}

func (i CartItem) LineTotal() catalog.Money {
	return i.Price.MulQty(i.Quantity)
}

// SameLine reports whether two items describe the same configured product.
// Such items are merged by summing quantity instead of appended.
func (i CartItem) SameLine(other CartItem) bool {
	return i.Category == other.Category &&
		i.Name == other.Name &&
		i.Description == other.Description &&
		reflect.DeepEqual(i.Options, other.Options)
}

// Cart preserves insertion order for display.
type Cart struct {
	Items []CartItem
}

// Total is always recomputed from the items; it is never cached.
func (c Cart) Total() catalog.Money {
	var total catalog.Money
	for _, item := range c.Items {
		total.Currency = item.Price.Currency
		total = total.Add(item.LineTotal())
	}
	return total
}

func (c Cart) IndexOf(id string) int {
	for i, item := range c.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
