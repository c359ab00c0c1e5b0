package rest

import (
	"net/http"

	"github.com/pixelpatch/studio-api/internal/catalog/app"
	"github.com/pixelpatch/studio-api/pkg/httpx"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/catalog", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, h.svc.Listing())
	})
}
