package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWithSession(t *testing.T) {
	var seen []string
	h := WithSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, SessionID(r.Context()))
	}))

	t.Run("first contact issues a cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

		cookies := rec.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Name != "studio_session" {
			t.Fatalf("expected a session cookie, got %v", cookies)
		}
		if seen[0] == "" {
			t.Fatal("handler should see a session id")
		}
		if cookies[0].Value != seen[0] {
			t.Error("cookie and context id should match")
		}
	})

	t.Run("existing cookie is reused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.AddCookie(&http.Cookie{Name: "studio_session", Value: seen[0]})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if len(rec.Result().Cookies()) != 0 {
			t.Error("no new cookie expected")
		}
		if seen[1] != seen[0] {
			t.Errorf("session id changed: %s vs %s", seen[1], seen[0])
		}
	})

	t.Run("garbage cookie is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.AddCookie(&http.Cookie{Name: "studio_session", Value: "not-a-uuid"})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if len(rec.Result().Cookies()) != 1 {
			t.Error("expected a replacement cookie")
		}
	})
}
