package app

import (
	"sort"

	"github.com/pixelpatch/studio-api/internal/catalog/domain"
)

type Variant struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

type CategoryListing struct {
	Category domain.Category `json:"category"`
	Variants []Variant       `json:"variants"`
}

// Listing returns every category's variants with decimal prices, for the
// configurator front end to render.
func (s *Service) Listing() []CategoryListing {
	out := []CategoryListing{
		{Category: domain.CategoryWebsite, Variants: variants(s.currency, websitePrices, websiteLabels)},
		{Category: domain.CategoryBranding, Variants: variants(s.currency, brandingPrices, brandingLabels)},
		{Category: domain.CategoryMarketing, Variants: variants(s.currency, marketingPrices, marketingLabels)},
		{Category: domain.CategoryDevelopment, Variants: variants(s.currency, developmentPrices, developmentLabels)},
	}
	return out
}

func variants(currency string, prices map[string]int64, labels map[string]string) []Variant {
	vs := make([]Variant, 0, len(prices))
	for key, amount := range prices {
		vs = append(vs, Variant{
			Key:   key,
			Label: labels[key],
			Price: (domain.Money{Currency: currency, Amount: amount}).Decimal(),
		})
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i].Price < vs[j].Price })
	return vs
}
