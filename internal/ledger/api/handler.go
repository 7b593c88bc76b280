package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"juicepos/internal/ledger"
	"juicepos/internal/logger"
	"juicepos/internal/models"
)

type Handler struct {
	Ledger *ledger.SalesStore
	Logger *logger.Logger
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/weeks", func(r chi.Router) {
		r.Get("/", h.ListWeeks)
		r.Post("/", h.CreateWeek)
		r.Get("/{weekId}", h.GetWeek)
	})
	r.Get("/sales", h.ListSales)
}

func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	weeks := h.Ledger.Weeks()
	if weeks == nil {
		weeks = []models.FestivalWeek{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(weeks); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListWeeks: failed to encode response: %v", err))
	}
}

func (h *Handler) CreateWeek(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateWeek: failed to decode request body: %v", err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.LocationName == "" {
		http.Error(w, "locationName is required", http.StatusBadRequest)
		return
	}

	reference := time.Now()
	if req.Date != nil {
		reference = *req.Date
	}

	week := h.Ledger.CreateWeek(req.LocationName, reference)
	h.Logger.Info("API", fmt.Sprintf("CreateWeek: %s (%s)", week.LocationName, week.WeekStart.Format("2006-01-02")))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(week); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateWeek: failed to encode response: %v", err))
	}
}

func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	weekID := chi.URLParam(r, "weekId")

	week, ok := h.Ledger.Week(weekID)
	if !ok {
		http.Error(w, "Festival week not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(week); err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetWeek: failed to encode response: %v", err))
	}
}

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales := h.Ledger.Sales()
	if sales == nil {
		sales = []models.Sale{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sales); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListSales: failed to encode response: %v", err))
	}
}
