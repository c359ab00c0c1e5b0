package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixelpatch/studio-api/internal/catalog/domain"
)

// PricedItem is the catalog's answer for a validated set of options: what the
// line should be called, how it reads on a receipt, and what it costs.
type PricedItem struct {
	Name        string
	Description string
	Price       domain.Money
}

type Service struct {
	currency string
	log      *slog.Logger
}

func NewService(currency string, log *slog.Logger) *Service {
	if currency == "" {
		currency = "USD"
	}
	return &Service{currency: currency, log: log}
}

// PriceItem validates the options and runs the category's pricing and
// description rules.
func (s *Service) PriceItem(opts domain.Options) (PricedItem, error) {
	if err := opts.Validate(); err != nil {
		return PricedItem{}, err
	}

	switch o := opts.(type) {
	case domain.WebsiteOptions:
		return s.priceWebsite(o), nil
	case domain.BrandingOptions:
		return s.priceBranding(o), nil
	case domain.MarketingOptions:
		return s.priceMarketing(o), nil
	case domain.DevelopmentOptions:
		return s.priceDevelopment(o), nil
	}
	return PricedItem{}, fmt.Errorf("%w: %T", domain.ErrUnknownCategory, opts)
}

// LookupPrice resolves a single variant within a category. A variant with no
// price-table entry falls back to the category's default variant; the miss is
// logged rather than silently keeping a stale price.
func (s *Service) LookupPrice(cat domain.Category, variantKey string) (domain.Money, string) {
	var (
		prices   map[string]int64
		labels   map[string]string
		fallback string
	)

	switch cat {
	case domain.CategoryWebsite:
		prices, labels, fallback = websitePrices, websiteLabels, websiteDefaultVariant
	case domain.CategoryBranding:
		prices, labels, fallback = brandingPrices, brandingLabels, brandingDefaultVariant
	case domain.CategoryMarketing:
		prices, labels, fallback = marketingPrices, marketingLabels, marketingDefaultVariant
	case domain.CategoryDevelopment:
		prices, labels, fallback = developmentPrices, developmentLabels, developmentDefaultVariant
	default:
		s.log.Warn("price lookup for unknown category", slog.String("category", string(cat)))
		return domain.Money{Currency: s.currency}, ""
	}

	amount, ok := prices[variantKey]
	if !ok {
		s.log.Warn("price table miss, using category default",
			slog.String("category", string(cat)),
			slog.String("variant", variantKey),
			slog.String("fallback", fallback),
		)
		variantKey = fallback
		amount = prices[fallback]
	}

	return domain.Money{Currency: s.currency, Amount: amount}, labels[variantKey]
}

func (s *Service) priceWebsite(o domain.WebsiteOptions) PricedItem {
	var total int64
	labels := make([]string, 0, len(o.ProjectTypes))
	for _, pt := range o.ProjectTypes {
		price, label := s.LookupPrice(domain.CategoryWebsite, pt)
		total += price.Amount
		labels = append(labels, label)
	}

	return PricedItem{
		Name:        "Website Design - " + strings.Join(labels, " + "),
		Description: joinParts(industryPart(o.Industry), o.Notes),
		Price:       domain.Money{Currency: s.currency, Amount: total},
	}
}

func (s *Service) priceBranding(o domain.BrandingOptions) PricedItem {
	price, label := s.LookupPrice(domain.CategoryBranding, o.Service)

	var extras []string
	if o.Animation {
		price.Amount += brandingAnimationCharge
		extras = append(extras, "Motion treatment")
	}
	if o.ThreeD {
		price.Amount += brandingThreeDCharge
		extras = append(extras, "3D treatment")
	}

	return PricedItem{
		Name:        "Branding - " + label,
		Description: joinParts(industryPart(o.Industry), strings.Join(extras, ", "), o.Notes),
		Price:       price,
	}
}

func (s *Service) priceMarketing(o domain.MarketingOptions) PricedItem {
	price, label := s.LookupPrice(domain.CategoryMarketing, o.Format)

	if extra := len(o.Platforms) - 1; extra > 0 {
		price.Amount += int64(extra) * marketingExtraPlatformCost
	}

	var platforms string
	if len(o.Platforms) > 0 {
		platforms = "Platforms: " + strings.Join(o.Platforms, ", ")
	}

	return PricedItem{
		Name:        "Marketing - " + label,
		Description: joinParts(platforms, o.Notes),
		Price:       price,
	}
}

func (s *Service) priceDevelopment(o domain.DevelopmentOptions) PricedItem {
	price, label := s.LookupPrice(domain.CategoryDevelopment, o.Tier)

	var cms string
	if o.CMS {
		price.Amount += developmentCMSCharge
		cms = "CMS integration"
	}

	return PricedItem{
		Name:        "Development - " + label,
		Description: joinParts(cms, o.Notes),
		Price:       price,
	}
}

func industryPart(industry string) string {
	if industry == "" {
		return ""
	}
	return "Industry: " + industry
}

func joinParts(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "; ")
}
