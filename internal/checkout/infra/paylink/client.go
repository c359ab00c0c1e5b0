// Package paylink talks to the external payment-link provider.
package paylink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pixelpatch/studio-api/internal/checkout/app"
)

type moneyJSON struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type lineItemJSON struct {
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	BasePriceMoney moneyJSON `json:"base_price_money"`
	Note           string    `json:"note,omitempty"`
}

type orderJSON struct {
	LineItems []lineItemJSON    `json:"line_items"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type createRequest struct {
	IdempotencyKey  string    `json:"idempotency_key"`
	Order           orderJSON `json:"order"`
	CheckoutOptions struct {
		RedirectURL string `json:"redirect_url"`
	} `json:"checkout_options"`
	PrePopulatedData struct {
		BuyerEmail string `json:"buyer_email"`
	} `json:"pre_populated_data"`
}

type createResponse struct {
	PaymentLink struct {
		URL     string `json:"url"`
		ID      string `json:"id"`
		OrderID string `json:"order_id"`
	} `json:"payment_link"`
}

type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

var _ app.PaymentLinks = (*Client)(nil)

// CreateLink posts one payment-link creation request and returns the hosted
// checkout link.
func (c *Client) CreateLink(ctx context.Context, req app.LinkRequest) (app.Link, error) {
	var payload createRequest
	payload.IdempotencyKey = req.IdempotencyKey
	payload.Order.Metadata = req.Metadata
	payload.CheckoutOptions.RedirectURL = req.RedirectURL
	payload.PrePopulatedData.BuyerEmail = req.BuyerEmail

	payload.Order.LineItems = make([]lineItemJSON, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		payload.Order.LineItems = append(payload.Order.LineItems, lineItemJSON{
			Name:     item.Name,
			Quantity: item.Quantity,
			BasePriceMoney: moneyJSON{
				AmountCents: item.AmountCents,
				Currency:    item.Currency,
			},
			Note: item.Note,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return app.Link{}, fmt.Errorf("marshalling payment link request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment-links", bytes.NewReader(body))
	if err != nil {
		return app.Link{}, fmt.Errorf("building payment link request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return app.Link{}, fmt.Errorf("sending payment link request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return app.Link{}, fmt.Errorf("payment link request returned %d: %s", resp.StatusCode, snippet)
	}

	var decoded createResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return app.Link{}, fmt.Errorf("decoding payment link response: %w", err)
	}

	return app.Link{
		URL:     decoded.PaymentLink.URL,
		ID:      decoded.PaymentLink.ID,
		OrderID: decoded.PaymentLink.OrderID,
	}, nil
}
