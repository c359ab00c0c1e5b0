package app

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	catalogapp "github.com/pixelpatch/studio-api/internal/catalog/app"
	catalog "github.com/pixelpatch/studio-api/internal/catalog/domain"
	"github.com/pixelpatch/studio-api/internal/notify"
)

type capturedNote struct {
	kind    notify.Kind
	message string
}

type fakeNotifier struct {
	notes []capturedNote
}

func (f *fakeNotifier) Publish(sessionID string, kind notify.Kind, message string) {
	f.notes = append(f.notes, capturedNote{kind: kind, message: message})
}

func newTestService(t *testing.T) (*Service, *fakeNotifier) {
	t.Helper()
	pricer := catalogapp.NewService("USD", slog.New(slog.NewTextHandler(io.Discard, nil)))
	notifier := &fakeNotifier{}
	return NewService(pricer, notifier), notifier
}

func intPtr(n int) *int { return &n }

func desktopSite() Candidate {
	return Candidate{
		Options:  catalog.WebsiteOptions{ProjectTypes: []string{"desktop"}},
		Quantity: 1,
	}
}

func TestAddItemValidation(t *testing.T) {
	svc, _ := newTestService(t)

	t.Run("zero quantity rejected", func(t *testing.T) {
		cand := desktopSite()
		cand.Quantity = 0
		if _, err := svc.AddItem("s1", cand); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("missing required selection rejected without mutation", func(t *testing.T) {
		_, err := svc.AddItem("s1", Candidate{Options: catalog.WebsiteOptions{}, Quantity: 1})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if n := len(svc.Cart("s1").Items); n != 0 {
			t.Errorf("cart should be untouched, has %d items", n)
		}
	})
}

// Mirrors the reference walkthrough: add desktop website twice, drop quantity
// back to one, then remove.
func TestCartLifecycle(t *testing.T) {
	svc, notifier := newTestService(t)

	item, err := svc.AddItem("s1", desktopSite())
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if got := svc.Total("s1").Amount; got != 45000 {
		t.Fatalf("expected total 45000, got %d", got)
	}

	if _, err := svc.AddItem("s1", desktopSite()); err != nil {
		t.Fatalf("second AddItem failed: %v", err)
	}
	cart := svc.Cart("s1")
	if len(cart.Items) != 1 {
		t.Fatalf("duplicate add must merge, got %d items", len(cart.Items))
	}
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", cart.Items[0].Quantity)
	}
	if got := cart.Total().Amount; got != 90000 {
		t.Fatalf("expected total 90000, got %d", got)
	}

	if _, err := svc.UpdateItem("s1", item.ID, ItemPatch{Quantity: intPtr(1)}); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if got := svc.Total("s1").Amount; got != 45000 {
		t.Fatalf("expected total 45000, got %d", got)
	}

	if _, err := svc.RemoveItem("s1", item.ID); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if got := svc.Total("s1").Amount; got != 0 {
		t.Fatalf("expected empty cart total 0, got %d", got)
	}

	if len(notifier.notes) != 4 {
		t.Fatalf("expected 4 notifications, got %d: %+v", len(notifier.notes), notifier.notes)
	}
	if notifier.notes[0].message != "Website Design - Desktop added to cart ($450.00)" {
		t.Errorf("unexpected add notification %q", notifier.notes[0].message)
	}
	if notifier.notes[2].message != "Website Design - Desktop: quantity updated to 1" {
		t.Errorf("quantity change should notify, got %q", notifier.notes[2].message)
	}
}

func TestMergeRequiresStructuralEquality(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.AddItem("s1", desktopSite()); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	other := Candidate{
		Options:  catalog.WebsiteOptions{ProjectTypes: []string{"desktop"}, Industry: "retail"},
		Quantity: 1,
	}
	if _, err := svc.AddItem("s1", other); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if n := len(svc.Cart("s1").Items); n != 2 {
		t.Fatalf("different options must not merge, got %d items", n)
	}
}

func TestQuantityFloor(t *testing.T) {
	svc, _ := newTestService(t)

	item, err := svc.AddItem("s1", desktopSite())
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	cart, err := svc.UpdateItem("s1", item.ID, ItemPatch{Quantity: intPtr(0)})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("quantity 0 must remove the item, got %d items", len(cart.Items))
	}

	for _, it := range svc.Cart("s1").Items {
		if it.Quantity < 1 {
			t.Fatalf("cart contains item with quantity %d", it.Quantity)
		}
	}
}

func TestUpdateItemRepricesOnOptionChange(t *testing.T) {
	svc, _ := newTestService(t)

	item, err := svc.AddItem("s1", Candidate{
		Options:  catalog.BrandingOptions{Service: "logo"},
		Quantity: 1,
	})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.Price.Amount != 35000 {
		t.Fatalf("expected 35000, got %d", item.Price.Amount)
	}

	cart, err := svc.UpdateItem("s1", item.ID, ItemPatch{Options: json.RawMessage(`{"service":"identity"}`)})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	got := cart.Items[0]
	if got.Price.Amount != 90000 {
		t.Errorf("expected re-priced amount 90000, got %d", got.Price.Amount)
	}
	if got.Name != "Branding - Full Identity" {
		t.Errorf("expected name to follow the option change, got %q", got.Name)
	}
}

func TestTotalMatchesItemSumAfterEveryOperation(t *testing.T) {
	svc, _ := newTestService(t)

	check := func(step string) {
		t.Helper()
		cart := svc.Cart("s1")
		var want int64
		for _, it := range cart.Items {
			want += it.Price.Amount * int64(it.Quantity)
		}
		if got := svc.Total("s1").Amount; got != want {
			t.Fatalf("%s: total %d drifted from item sum %d", step, got, want)
		}
	}

	a, _ := svc.AddItem("s1", desktopSite())
	check("add website")

	b, err := svc.AddItem("s1", Candidate{
		Options:  catalog.DevelopmentOptions{Tier: "ecommerce", CMS: true},
		Quantity: 3,
	})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	check("add development")

	if _, err := svc.UpdateItem("s1", b.ID, ItemPatch{Quantity: intPtr(2)}); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	check("update quantity")

	if _, err := svc.RemoveItem("s1", a.ID); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	check("remove website")
}

func TestUpdateItemMergesWithExistingLine(t *testing.T) {
	svc, _ := newTestService(t)

	logo, err := svc.AddItem("s1", Candidate{
		Options:  catalog.BrandingOptions{Service: "logo"},
		Quantity: 1,
	})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := svc.AddItem("s1", Candidate{
		Options:  catalog.BrandingOptions{Service: "identity"},
		Quantity: 1,
	}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	cart, err := svc.UpdateItem("s1", logo.ID, ItemPatch{Options: json.RawMessage(`{"service":"identity"}`)})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("lines made identical by an update must merge, got %d items", len(cart.Items))
	}
	if got := cart.Items[0]; got.Quantity != 2 || got.Price.Amount != 90000 {
		t.Errorf("expected merged identity line qty 2 at 90000, got qty %d at %d", got.Quantity, got.Price.Amount)
	}
}

func TestRemoveItemNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.RemoveItem("s1", "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDraftLifecycle(t *testing.T) {
	svc, _ := newTestService(t)

	t.Run("partial updates accumulate", func(t *testing.T) {
		if _, err := svc.UpdateDraft("s1", catalog.CategoryWebsite, json.RawMessage(`{"project_types":["desktop"]}`)); err != nil {
			t.Fatalf("UpdateDraft failed: %v", err)
		}
		opts, err := svc.UpdateDraft("s1", catalog.CategoryWebsite, json.RawMessage(`{"industry":"retail"}`))
		if err != nil {
			t.Fatalf("UpdateDraft failed: %v", err)
		}
		site := opts.(catalog.WebsiteOptions)
		if len(site.ProjectTypes) != 1 || site.Industry != "retail" {
			t.Fatalf("partial update lost state: %+v", site)
		}
	})

	t.Run("category switch discards draft", func(t *testing.T) {
		opts, err := svc.UpdateDraft("s1", catalog.CategoryBranding, nil)
		if err != nil {
			t.Fatalf("UpdateDraft failed: %v", err)
		}
		if _, ok := opts.(catalog.BrandingOptions); !ok {
			t.Fatalf("expected branding defaults, got %T", opts)
		}
	})

	t.Run("preview prices the draft without committing", func(t *testing.T) {
		if _, err := svc.UpdateDraft("s2", catalog.CategoryWebsite, json.RawMessage(`{"project_types":["mobile"]}`)); err != nil {
			t.Fatalf("UpdateDraft failed: %v", err)
		}
		priced, err := svc.PreviewDraft("s2")
		if err != nil {
			t.Fatalf("PreviewDraft failed: %v", err)
		}
		if priced.Price.Amount != 40000 {
			t.Errorf("expected preview 40000, got %d", priced.Price.Amount)
		}
		if n := len(svc.Cart("s2").Items); n != 0 {
			t.Errorf("preview must not touch the cart, has %d items", n)
		}
	})

	t.Run("commit consumes the draft", func(t *testing.T) {
		if _, err := svc.UpdateDraft("s3", catalog.CategoryWebsite, json.RawMessage(`{"project_types":["desktop"]}`)); err != nil {
			t.Fatalf("UpdateDraft failed: %v", err)
		}
		if _, err := svc.UpdateDraft("s3", catalog.CategoryBranding, json.RawMessage(`{"service":"logo"}`)); err != nil {
			t.Fatalf("UpdateDraft failed: %v", err)
		}

		if _, err := svc.AddItem("s3", Candidate{
			Options:  catalog.BrandingOptions{Service: "logo"},
			Quantity: 1,
		}); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}

		opts, ok := svc.Draft("s3")
		if !ok {
			t.Fatal("draft should still exist after commit")
		}
		branding, ok := opts.(catalog.BrandingOptions)
		if !ok {
			t.Fatalf("expected branding draft, got %T", opts)
		}
		if branding.Service != "" {
			t.Errorf("committed category's draft should reset to defaults, got %+v", branding)
		}
	})

	t.Run("commit leaves other categories' drafts alone", func(t *testing.T) {
		if _, err := svc.UpdateDraft("s4", catalog.CategoryWebsite, json.RawMessage(`{"project_types":["mobile"]}`)); err != nil {
			t.Fatalf("UpdateDraft failed: %v", err)
		}

		if _, err := svc.AddItem("s4", Candidate{
			Options:  catalog.BrandingOptions{Service: "logo"},
			Quantity: 1,
		}); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}

		opts, ok := svc.Draft("s4")
		if !ok {
			t.Fatal("draft should survive a commit in another category")
		}
		if site := opts.(catalog.WebsiteOptions); len(site.ProjectTypes) != 1 {
			t.Errorf("website draft should be untouched, got %+v", site)
		}
	})

	t.Run("reset restores defaults", func(t *testing.T) {
		opts, err := svc.ResetDraft("s2", catalog.CategoryWebsite)
		if err != nil {
			t.Fatalf("ResetDraft failed: %v", err)
		}
		if site := opts.(catalog.WebsiteOptions); len(site.ProjectTypes) != 0 {
			t.Errorf("reset should clear selections: %+v", site)
		}
	})
}
