package app

import (
	catalogapp "github.com/pixelpatch/studio-api/internal/catalog/app"
	catalog "github.com/pixelpatch/studio-api/internal/catalog/domain"
	"github.com/pixelpatch/studio-api/internal/notify"
)

// Pricer turns validated configurator options into a named, priced line.
type Pricer interface {
	PriceItem(opts catalog.Options) (catalogapp.PricedItem, error)
}

// Notifier receives user-facing feedback about cart mutations. Implementations
// must never fail or block the mutation they report on.
type Notifier interface {
	Publish(sessionID string, kind notify.Kind, message string)
}
