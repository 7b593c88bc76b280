package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"juicepos/internal/logger"
	"juicepos/internal/models"
	"juicepos/internal/stats"
)

type Handler struct {
	Service    *stats.Service
	Recomputer *stats.Recomputer
	Logger     *logger.Logger
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/stats", func(r chi.Router) {
		r.Get("/revenue", h.GetRevenue)
		r.Get("/flavours", h.GetFlavourCounts)
		r.Get("/recent", h.GetRecent)
		r.Post("/refresh", h.Refresh)
		r.Get("/latest", h.GetLatest)
	})
}

// parseQuery reads from/to/week/granularity query parameters. The span
// defaults to the last month, inclusive on both ends.
func (h *Handler) parseQuery(r *http.Request) (stats.Query, error) {
	now := time.Now()
	q := stats.Query{
		From: now.AddDate(0, -1, 0),
		To:   now,
		Week: stats.AllWeeks(),
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := parseDate(raw, false)
		if err != nil {
			return q, fmt.Errorf("invalid from date %q", raw)
		}
		q.From = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := parseDate(raw, true)
		if err != nil {
			return q, fmt.Errorf("invalid to date %q", raw)
		}
		q.To = t
	}
	if weekID := r.URL.Query().Get("week"); weekID != "" {
		q.Week = stats.OnlyWeek(weekID)
	}

	granularity, ok := stats.ParseGranularity(r.URL.Query().Get("granularity"))
	if !ok {
		return q, fmt.Errorf("invalid granularity %q", r.URL.Query().Get("granularity"))
	}
	q.Granularity = granularity

	return q, nil
}

// parseDate accepts RFC 3339 or a bare date. A bare "to" date covers its
// whole day.
func parseDate(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	return t, nil
}

func (h *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report := h.Service.Revenue(q)
	h.Logger.LogStats("REVENUE", fmt.Sprintf("%d buckets, grand total %.2f", len(report.Points), report.GrandTotal))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetRevenue: failed to encode response: %v", err))
	}
}

func (h *Handler) GetFlavourCounts(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report := h.Service.FlavourCounts(q)
	h.Logger.LogStats("FLAVOURS", fmt.Sprintf("%.2f cups over %d flavours", report.GrandCups, len(report.Rows)))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetFlavourCounts: failed to encode response: %v", err))
	}
}

// Refresh schedules a background recompute of both reports for the
// given query. A newer refresh supersedes one still in flight, so a
// dashboard firing requests on every filter change only ever pays for
// the last one.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.Recomputer.Submit(q)
	h.Logger.LogStats("REFRESH", fmt.Sprintf("scheduled recompute for %s to %s", q.From.Format("2006-01-02"), q.To.Format("2006-01-02")))
	w.WriteHeader(http.StatusAccepted)
}

// GetLatest serves the most recently completed refresh, or 404 when no
// refresh has finished yet.
func (h *Handler) GetLatest(w http.ResponseWriter, r *http.Request) {
	result, ok := h.Recomputer.Latest()
	if !ok {
		http.Error(w, "No report computed yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetLatest: failed to encode response: %v", err))
	}
}

func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sales := h.Service.Recent(q)
	if sales == nil {
		sales = []models.Sale{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sales); err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetRecent: failed to encode response: %v", err))
	}
}
