package rest

import (
	"errors"
	"net/http"

	"github.com/pixelpatch/studio-api/internal/intake/app"
	"github.com/pixelpatch/studio-api/internal/intake/domain"
	"github.com/pixelpatch/studio-api/pkg/httpx"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/intake", h.submit)
}

type submitRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Company    string   `json:"company"`
	Website    string   `json:"website"`
	Goals      string   `json:"goals"`
	Timeline   string   `json:"timeline"`
	Budget     string   `json:"budget"`
	LeadSource string   `json:"lead_source"`
	Services   []string `json:"services"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	err := h.svc.Submit(r.Context(), domain.Submission{
		Name:       req.Name,
		Email:      req.Email,
		Company:    req.Company,
		Website:    req.Website,
		Goals:      req.Goals,
		Timeline:   req.Timeline,
		Budget:     req.Budget,
		LeadSource: req.LeadSource,
		Services:   req.Services,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			httpx.Error(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
			return
		}
		httpx.Error(w, http.StatusBadGateway, "UPSTREAM", err.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
}
