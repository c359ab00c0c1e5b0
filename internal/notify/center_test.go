package notify

import (
	"testing"
	"time"
)

func TestPublishAndList(t *testing.T) {
	c := NewCenter(5 * time.Second)

	c.Publish("s1", KindSuccess, "added Website Design - Desktop to cart")
	c.Publish("s1", KindError, "checkout failed")
	c.Publish("s2", KindSuccess, "other session")

	got := c.List("s1")
	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0].Kind != KindSuccess || got[1].Kind != KindError {
		t.Errorf("notifications out of order: %+v", got)
	}
	if len(c.List("s2")) != 1 {
		t.Error("sessions should be isolated")
	}
}

func TestExpiry(t *testing.T) {
	c := NewCenter(5 * time.Second)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Publish("s1", KindSuccess, "old")

	c.now = func() time.Time { return base.Add(3 * time.Second) }
	c.Publish("s1", KindSuccess, "newer")

	c.now = func() time.Time { return base.Add(6 * time.Second) }
	got := c.List("s1")
	if len(got) != 1 {
		t.Fatalf("expected only the newer notification, got %d", len(got))
	}
	if got[0].Message != "newer" {
		t.Errorf("expected newer to survive, got %q", got[0].Message)
	}

	c.sweep()
	c.now = func() time.Time { return base.Add(20 * time.Second) }
	c.sweep()
	if len(c.sessions) != 0 {
		t.Errorf("sweep should drop empty sessions, have %d", len(c.sessions))
	}
}

func TestPublishIgnoresEmpty(t *testing.T) {
	c := NewCenter(0)

	c.Publish("", KindSuccess, "no session")
	c.Publish("s1", KindSuccess, "")

	if len(c.sessions) != 0 {
		t.Errorf("expected nothing recorded, got %d sessions", len(c.sessions))
	}
}
