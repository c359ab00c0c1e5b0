package mailer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pixelpatch/studio-api/internal/newsletter/app"
)

func TestSubscribe(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/lists/list-1/members" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "key", "list-1")
		if err := client.Subscribe(context.Background(), "Ada", "ada@example.com"); err != nil {
			t.Fatalf("Subscribe failed: %v", err)
		}
	})

	t.Run("member exists maps to ErrDuplicate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"title":"Member Exists"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "key", "list-1")
		err := client.Subscribe(context.Background(), "Ada", "ada@example.com")
		if !errors.Is(err, app.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("other failure is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "key", "list-1")
		if err := client.Subscribe(context.Background(), "Ada", "ada@example.com"); err == nil {
			t.Fatal("expected error")
		}
	})
}
