package app

import (
	"context"

	cartdomain "github.com/pixelpatch/studio-api/internal/cart/domain"
	"github.com/pixelpatch/studio-api/internal/records"
)

type LineItem struct {
	Name        string
	Quantity    int
	AmountCents int64
	Currency    string
	Note        string
}

// LinkRequest is everything the payment-link provider needs for one attempt.
// The idempotency key is fresh per attempt so retried checkouts are never
// collapsed into a single charge.
type LinkRequest struct {
	IdempotencyKey string
	LineItems      []LineItem
	Metadata       map[string]string
	RedirectURL    string
	BuyerEmail     string
}

type Link struct {
	URL     string
	ID      string
	OrderID string
}

// PaymentLinks is the outbound payment-link provider.
type PaymentLinks interface {
	CreateLink(ctx context.Context, req LinkRequest) (Link, error)
}

// CartReader exposes the committed cart for a session.
type CartReader interface {
	Cart(sessionID string) cartdomain.Cart
}

// Recorder logs checkout attempts locally for reconciliation. Best effort.
type Recorder interface {
	RecordCheckoutAttempt(ctx context.Context, att records.CheckoutAttempt) error
}
