// Package mailer talks to the external newsletter platform.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pixelpatch/studio-api/internal/newsletter/app"
)

type memberJSON struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Client struct {
	baseURL string
	apiKey  string
	listID  string
	httpc   *http.Client
}

func NewClient(baseURL, apiKey, listID string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		listID:  listID,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

var _ app.Provider = (*Client)(nil)

func (c *Client) Subscribe(ctx context.Context, name, email string) error {
	body, err := json.Marshal(memberJSON{Name: name, Email: email})
	if err != nil {
		return fmt.Errorf("marshalling member: %w", err)
	}

	url := fmt.Sprintf("%s/lists/%s/members", c.baseURL, c.listID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building member request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sending member request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode == http.StatusConflict || strings.Contains(string(snippet), "Member Exists") {
		return app.ErrDuplicate
	}
	return fmt.Errorf("member request returned %d: %s", resp.StatusCode, snippet)
}
