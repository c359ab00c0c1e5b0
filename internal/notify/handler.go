package notify

import (
	"net/http"

	"github.com/pixelpatch/studio-api/pkg/httpx"
)

// Register exposes the session's live notifications.
func (c *Center) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/notifications", func(w http.ResponseWriter, r *http.Request) {
		sid := httpx.SessionID(r.Context())
		list := c.List(sid)
		if list == nil {
			list = []Notification{}
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	})
}
