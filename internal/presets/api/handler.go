package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"juicepos/internal/logger"
	"juicepos/internal/models"
	"juicepos/internal/presets"
)

type Handler struct {
	Store  *presets.Store
	Logger *logger.Logger
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/presets", func(r chi.Router) {
		r.Get("/", h.ListPresets)
		r.Post("/", h.CreatePreset)
		r.Put("/", h.ReplaceAll)
		r.Delete("/{presetId}", h.DeletePreset)
		r.Post("/{presetId}/expand", h.ExpandPreset)
	})
}

func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	list := h.Store.Presets()
	if list == nil {
		list = []models.Preset{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListPresets: failed to encode response: %v", err))
	}
}

func (h *Handler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	var req models.PresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreatePreset: failed to decode request body: %v", err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" || len(req.Flavours) == 0 {
		http.Error(w, "A preset needs a name and at least one flavour", http.StatusBadRequest)
		return
	}
	for _, f := range req.Flavours {
		if !f.Valid() {
			h.Logger.Warn("API", fmt.Sprintf("CreatePreset: unknown flavour %q", f))
			http.Error(w, fmt.Sprintf("Unknown flavour %q", f), http.StatusBadRequest)
			return
		}
	}
	for _, a := range req.AddOns {
		if !a.Valid() {
			h.Logger.Warn("API", fmt.Sprintf("CreatePreset: unknown add-on %q", a))
			http.Error(w, fmt.Sprintf("Unknown add-on %q", a), http.StatusBadRequest)
			return
		}
	}

	preset := models.NewPreset(req.Name, req.Cup, req.Flavours, req.AddOns)
	h.Store.Add(preset)
	h.Logger.Info("API", fmt.Sprintf("CreatePreset: %s", preset.Name))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(preset); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreatePreset: failed to encode response: %v", err))
	}
}

func (h *Handler) ReplaceAll(w http.ResponseWriter, r *http.Request) {
	var list []models.Preset
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ReplaceAll: failed to decode request body: %v", err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.Store.ReplaceAll(list)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	h.Store.Remove(chi.URLParam(r, "presetId"))
	w.WriteHeader(http.StatusNoContent)
}

// ExpandPreset builds a drink from the preset at current prices; the
// client adds it to the cart like any other drink.
func (h *Handler) ExpandPreset(w http.ResponseWriter, r *http.Request) {
	presetID := chi.URLParam(r, "presetId")

	preset, ok := h.Store.Get(presetID)
	if !ok {
		http.Error(w, "Preset not found", http.StatusNotFound)
		return
	}

	drink := presets.Expand(preset)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(drink); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ExpandPreset: failed to encode response: %v", err))
	}
}
