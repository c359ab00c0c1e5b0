// Package notify surfaces transient, per-session feedback for cart and
// checkout outcomes. It is strictly an observer: publishing can never fail or
// block the operation it reports on.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

const DefaultTTL = 5 * time.Second

type Center struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string][]Notification
	now      func() time.Time
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:      ttl,
		sessions: make(map[string][]Notification),
		now:      time.Now,
	}
}

// Publish appends a notification for the session. Multiple notifications
// coexist and expire independently.
func (c *Center) Publish(sessionID string, kind Kind, message string) {
	if sessionID == "" || message == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[sessionID] = append(c.sessions[sessionID], Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: c.now(),
	})
}

// List returns the session's notifications that have not yet expired.
func (c *Center) List(sessionID string) []Notification {
	cutoff := c.now().Add(-c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	var live []Notification
	for _, n := range c.sessions[sessionID] {
		if n.CreatedAt.After(cutoff) {
			live = append(live, n)
		}
	}
	return live
}

// Run sweeps expired notifications until ctx is cancelled.
func (c *Center) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Center) sweep() {
	cutoff := c.now().Add(-c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	for sid, list := range c.sessions {
		var live []Notification
		for _, n := range list {
			if n.CreatedAt.After(cutoff) {
				live = append(live, n)
			}
		}
		if len(live) == 0 {
			delete(c.sessions, sid)
			continue
		}
		c.sessions[sid] = live
	}
}
