package rest

import (
	"errors"
	"net/http"

	"github.com/pixelpatch/studio-api/internal/newsletter/app"
	"github.com/pixelpatch/studio-api/pkg/httpx"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/newsletter", h.subscribe)
}

type subscribeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	if err := h.svc.Subscribe(r.Context(), req.Name, req.Email); err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
			return
		}
		httpx.Error(w, http.StatusBadGateway, "UPSTREAM", err.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "subscribed"})
}
