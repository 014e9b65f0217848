package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/ghostreach/internal/entity"
	"github.com/xavierca1/ghostreach/internal/logger"
)

type LeadHandler struct {
	leadRepo entity.LeadRepositoryInterface
	log      logger.Logger
}

func NewLeadHandler(leadRepo entity.LeadRepositoryInterface, log logger.Logger) *LeadHandler {
	return &LeadHandler{leadRepo: leadRepo, log: log}
}

type ListLeadsResponse struct {
	Status entity.LeadStatus `json:"status"`
	Count  int               `json:"count"`
	Leads  []entity.Lead     `json:"leads"`
}

type LeadStatsResponse struct {
	New       int `json:"new"`
	Contacted int `json:"contacted"`
	Total     int `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// List handles GET /leads?status=new. Status defaults to new.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		raw = string(entity.LeadStatusNew)
	}

	status, err := entity.ParseLeadStatus(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	leads, err := h.leadRepo.FetchByStatus(r.Context(), status)
	if err != nil {
		h.log.Error("Failed to list leads", logger.String("status", raw), logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list leads"})
		return
	}

	writeJSON(w, http.StatusOK, ListLeadsResponse{Status: status, Count: len(leads), Leads: leads})
}

// Stats handles GET /leads/stats.
func (h *LeadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.leadRepo.CountByStatus(r.Context())
	if err != nil {
		h.log.Error("Failed to count leads", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to count leads"})
		return
	}

	resp := LeadStatsResponse{
		New:       counts[entity.LeadStatusNew],
		Contacted: counts[entity.LeadStatusContacted],
	}
	resp.Total = resp.New + resp.Contacted
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

var errNotConfigured = errors.New("not configured")
