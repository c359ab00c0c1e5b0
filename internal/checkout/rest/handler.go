package rest

import (
	"errors"
	"net/http"

	"github.com/pixelpatch/studio-api/internal/checkout/app"
	"github.com/pixelpatch/studio-api/internal/checkout/domain"
	"github.com/pixelpatch/studio-api/pkg/httpx"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/checkout", h.getSession)
	mux.HandleFunc("POST /api/checkout", h.begin)
	mux.HandleFunc("POST /api/checkout/reset", h.reset)
}

type sessionJSON struct {
	Status      domain.Status `json:"status"`
	Error       string        `json:"error,omitempty"`
	CheckoutURL string        `json:"checkout_url,omitempty"`
}

func toSessionJSON(sess domain.Session) sessionJSON {
	return sessionJSON{
		Status:      sess.Status,
		Error:       sess.Error,
		CheckoutURL: sess.CheckoutURL,
	}
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sid := httpx.SessionID(r.Context())
	httpx.WriteJSON(w, http.StatusOK, toSessionJSON(h.svc.Session(sid)))
}

type beginRequest struct {
	Email string `json:"email"`
}

func (h *Handler) begin(w http.ResponseWriter, r *http.Request) {
	var req beginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	sid := httpx.SessionID(r.Context())
	sess, err := h.svc.Begin(r.Context(), sid, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyCart), errors.Is(err, app.ErrMissingEmail):
			httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		case errors.Is(err, app.ErrInFlight), errors.Is(err, app.ErrNotIdle):
			httpx.Error(w, http.StatusConflict, "CONFLICT", err.Error())
		default:
			httpx.Error(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		}
		return
	}

	// Provider failures land in the session state rather than an HTTP error;
	// the cart is intact and the client may reset and retry.
	status := http.StatusOK
	if sess.Status == domain.StatusError {
		status = http.StatusBadGateway
	}
	httpx.WriteJSON(w, status, toSessionJSON(sess))
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	sid := httpx.SessionID(r.Context())
	sess, err := h.svc.Reset(sid)
	if err != nil {
		httpx.Error(w, http.StatusConflict, "CONFLICT", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSessionJSON(sess))
}
