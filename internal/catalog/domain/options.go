package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

type Category string

const (
	CategoryWebsite     Category = "website"
	CategoryBranding    Category = "branding"
	CategoryMarketing   Category = "marketing"
	CategoryDevelopment Category = "development"
)

var ErrUnknownCategory = errors.New("unknown category")

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryWebsite, CategoryBranding, CategoryMarketing, CategoryDevelopment:
		return Category(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Options is the per-category configurator state. Each category carries its
// own concrete struct so option validity is checked when the item is priced,
// not deferred to display-time formatting.
type Options interface {
	Category() Category
	// Validate enforces the selections required before an item can be
	// priced and committed to the cart.
	Validate() error
}

type WebsiteOptions struct {
	ProjectTypes []string `json:"project_types"`
	Industry     string   `json:"industry"`
	Notes        string   `json:"notes"`
}

func (WebsiteOptions) Category() Category { return CategoryWebsite }

func (o WebsiteOptions) Validate() error {
	if len(o.ProjectTypes) == 0 {
		return errors.New("website: at least one project type is required")
	}
	return nil
}

type BrandingOptions struct {
	Service   string `json:"service"`
	Industry  string `json:"industry"`
	Animation bool   `json:"animation"`
	ThreeD    bool   `json:"three_d"`
	Notes     string `json:"notes"`
}

func (BrandingOptions) Category() Category { return CategoryBranding }

func (o BrandingOptions) Validate() error {
	if o.Service == "" {
		return errors.New("branding: a service selection is required")
	}
	return nil
}

type MarketingOptions struct {
	Format    string   `json:"format"`
	Platforms []string `json:"platforms"`
	Notes     string   `json:"notes"`
}

func (MarketingOptions) Category() Category { return CategoryMarketing }

func (o MarketingOptions) Validate() error {
	if o.Format == "" {
		return errors.New("marketing: a format selection is required")
	}
	return nil
}

type DevelopmentOptions struct {
	Tier  string `json:"tier"`
	CMS   bool   `json:"cms"`
	Notes string `json:"notes"`
}

func (DevelopmentOptions) Category() Category { return CategoryDevelopment }

func (o DevelopmentOptions) Validate() error {
	if o.Tier == "" {
		return errors.New("development: a tier selection is required")
	}
	return nil
}

// DefaultOptions returns the zero-valued configurator state for a category.
func DefaultOptions(cat Category) (Options, error) {
	switch cat {
	case CategoryWebsite:
		return WebsiteOptions{}, nil
	case CategoryBranding:
		return BrandingOptions{}, nil
	case CategoryMarketing:
		return MarketingOptions{}, nil
	case CategoryDevelopment:
		return DevelopmentOptions{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
}

// DecodeOptions unmarshals a raw option payload for a category into its
// concrete struct.
func DecodeOptions(cat Category, raw json.RawMessage) (Options, error) {
	base, err := DefaultOptions(cat)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return base, nil
	}
	return MergeOptions(base, raw)
}

// MergeOptions applies a partial JSON update on top of existing options.
// Fields absent from raw keep their current values; present fields replace
// them wholesale (including list fields).
func MergeOptions(base Options, raw json.RawMessage) (Options, error) {
	switch o := base.(type) {
	case WebsiteOptions:
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, fmt.Errorf("merging website options: %w", err)
		}
		return o, nil
	case BrandingOptions:
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, fmt.Errorf("merging branding options: %w", err)
		}
		return o, nil
	case MarketingOptions:
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, fmt.Errorf("merging marketing options: %w", err)
		}
		return o, nil
	case DevelopmentOptions:
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, fmt.Errorf("merging development options: %w", err)
		}
		return o, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownCategory, base)
}
