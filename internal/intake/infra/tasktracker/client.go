// Package tasktracker forwards intake submissions to the agency's task board.
package tasktracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pixelpatch/studio-api/internal/intake/app"
	"github.com/pixelpatch/studio-api/internal/intake/domain"
)

type taskJSON struct {
	ListID      string   `json:"list_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

type Client struct {
	baseURL string
	token   string
	listID  string
	httpc   *http.Client
}

func NewClient(baseURL, token, listID string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		listID:  listID,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

var _ app.TaskTracker = (*Client)(nil)

func (c *Client) CreateTask(ctx context.Context, sub domain.Submission) error {
	var desc strings.Builder
	fmt.Fprintf(&desc, "Email: %s\n", sub.Email)
	if sub.Company != "" {
		fmt.Fprintf(&desc, "Company: %s\n", sub.Company)
	}
	if sub.Website != "" {
		fmt.Fprintf(&desc, "Website: %s\n", sub.Website)
	}
	fmt.Fprintf(&desc, "Timeline: %s\nBudget: %s\nHeard about us: %s\n",
		sub.Timeline, sub.Budget, sub.LeadSource)
	if sub.Goals != "" {
		fmt.Fprintf(&desc, "\nGoals:\n%s\n", sub.Goals)
	}

	body, err := json.Marshal(taskJSON{
		ListID:      c.listID,
		Title:       "New inquiry: " + sub.Name,
		Description: desc.String(),
		Tags:        sub.Services,
	})
	if err != nil {
		return fmt.Errorf("marshalling task: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tasks", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building task request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sending task request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("task request returned %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
