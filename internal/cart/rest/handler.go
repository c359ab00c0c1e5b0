package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pixelpatch/studio-api/internal/cart/app"
	"github.com/pixelpatch/studio-api/internal/cart/domain"
	catalog "github.com/pixelpatch/studio-api/internal/catalog/domain"
	"github.com/pixelpatch/studio-api/pkg/httpx"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("DELETE /api/cart", h.clearCart)
	mux.HandleFunc("POST /api/cart/items", h.addItem)
	mux.HandleFunc("PATCH /api/cart/items/{id}", h.updateItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.removeItem)

	mux.HandleFunc("GET /api/draft", h.getDraft)
	mux.HandleFunc("PUT /api/draft", h.updateDraft)
	mux.HandleFunc("POST /api/draft/reset", h.resetDraft)
	mux.HandleFunc("GET /api/draft/preview", h.previewDraft)
}

type itemJSON struct {
	ID          string           `json:"id"`
	Category    catalog.Category `json:"category"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Options     catalog.Options  `json:"options"`
	Quantity    int              `json:"quantity"`
	LineTotal   float64          `json:"line_total"`
}

type cartJSON struct {
	Items []itemJSON `json:"items"`
	Total float64    `json:"total"`
}

func toItemJSON(item domain.CartItem) itemJSON {
	return itemJSON{
		ID:          item.ID,
		Category:    item.Category,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price.Decimal(),
		Options:     item.Options,
		Quantity:    item.Quantity,
		LineTotal:   item.LineTotal().Decimal(),
	}
}

func toCartJSON(cart domain.Cart) cartJSON {
	items := make([]itemJSON, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, toItemJSON(it))
	}
	return cartJSON{Items: items, Total: cart.Total().Decimal()}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	sid := httpx.SessionID(r.Context())
	httpx.WriteJSON(w, http.StatusOK, toCartJSON(h.svc.Cart(sid)))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	sid := httpx.SessionID(r.Context())
	h.svc.Clear(sid)
	httpx.WriteJSON(w, http.StatusOK, toCartJSON(h.svc.Cart(sid)))
}

type addItemRequest struct {
	Category string          `json:"category"`
	Options  json.RawMessage `json:"options"`
	Quantity int             `json:"quantity"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	cat, err := catalog.ParseCategory(req.Category)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	opts, err := catalog.DecodeOptions(cat, req.Options)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	sid := httpx.SessionID(r.Context())
	item, err := h.svc.AddItem(sid, app.Candidate{Options: opts, Quantity: req.Quantity})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toItemJSON(item))
}

type updateItemRequest struct {
	Quantity *int            `json:"quantity"`
	Options  json.RawMessage `json:"options"`
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	sid := httpx.SessionID(r.Context())
	cart, err := h.svc.UpdateItem(sid, r.PathValue("id"), app.ItemPatch{
		Quantity: req.Quantity,
		Options:  req.Options,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCartJSON(cart))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	sid := httpx.SessionID(r.Context())
	if _, err := h.svc.RemoveItem(sid, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCartJSON(h.svc.Cart(sid)))
}

type draftRequest struct {
	Category string          `json:"category"`
	Options  json.RawMessage `json:"options"`
}

func (h *Handler) getDraft(w http.ResponseWriter, r *http.Request) {
	sid := httpx.SessionID(r.Context())
	opts, ok := h.svc.Draft(sid)
	if !ok {
		httpx.Error(w, http.StatusNotFound, "NOT_FOUND", "no configuration in progress")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"category": opts.Category(),
		"options":  opts,
	})
}

func (h *Handler) updateDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	cat, err := catalog.ParseCategory(req.Category)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	sid := httpx.SessionID(r.Context())
	opts, err := h.svc.UpdateDraft(sid, cat, req.Options)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"category": opts.Category(),
		"options":  opts,
	})
}

func (h *Handler) resetDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	cat, err := catalog.ParseCategory(req.Category)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	sid := httpx.SessionID(r.Context())
	opts, err := h.svc.ResetDraft(sid, cat)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"category": opts.Category(),
		"options":  opts,
	})
}

func (h *Handler) previewDraft(w http.ResponseWriter, r *http.Request) {
	sid := httpx.SessionID(r.Context())
	priced, err := h.svc.PreviewDraft(sid)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"name":        priced.Name,
		"description": priced.Description,
		"price":       priced.Price.Decimal(),
	})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
	case errors.Is(err, app.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		httpx.Error(w, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}
