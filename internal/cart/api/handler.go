package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"juicepos/internal/cart"
	"juicepos/internal/ledger"
	"juicepos/internal/logger"
	"juicepos/internal/models"
	"juicepos/internal/pricing"
	"juicepos/internal/receipt"
)

type Handler struct {
	Cart    *cart.Cart
	Ledger  *ledger.SalesStore
	Receipt *receipt.Generator
	Logger  *logger.Logger
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{itemId}", h.SetQuantity)
		r.Post("/items/{itemId}/increment", h.Increment)
		r.Post("/items/{itemId}/decrement", h.Decrement)
		r.Delete("/items/{itemId}", h.RemoveItem)
	})
	r.Post("/checkout", h.Checkout)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	resp := models.CartResponse{
		Items: h.Cart.Items(),
		Total: h.Cart.Total(),
	}
	if resp.Items == nil {
		resp.Items = []models.OrderItem{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetCart: failed to encode response: %v", err))
	}
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("AddItem: failed to decode request body: %v", err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Selection) == 0 {
		h.Logger.Warn("API", "AddItem: empty flavour selection")
		http.Error(w, "A drink needs at least one flavour", http.StatusBadRequest)
		return
	}
	for _, f := range req.Selection {
		if !f.Valid() {
			h.Logger.Warn("API", fmt.Sprintf("AddItem: unknown flavour %q", f))
			http.Error(w, fmt.Sprintf("Unknown flavour %q", f), http.StatusBadRequest)
			return
		}
	}
	for _, a := range req.AddOns {
		if !a.Valid() {
			h.Logger.Warn("API", fmt.Sprintf("AddItem: unknown add-on %q", a))
			http.Error(w, fmt.Sprintf("Unknown add-on %q", a), http.StatusBadRequest)
			return
		}
	}

	drink := pricing.BuildDrink(req.CupType, req.AddOns, req.Selection)
	item := h.Cart.Add(drink, req.Quantity)
	h.Logger.Info("API", fmt.Sprintf("AddItem: %s x%d added to cart", drink.FlavourList(), item.Quantity))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(item); err != nil {
		h.Logger.Error("API", fmt.Sprintf("AddItem: failed to encode response: %v", err))
	}
}

func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	var req models.SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("SetQuantity: failed to decode request body: %v", err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.Cart.SetQuantity(itemID, req.Quantity)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Increment(w http.ResponseWriter, r *http.Request) {
	h.Cart.Increment(chi.URLParam(r, "itemId"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.Cart.Decrement(chi.URLParam(r, "itemId"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.Cart.Remove(chi.URLParam(r, "itemId"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.Cart.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Checkout snapshots the cart into an order, records the sale and clears
// the cart. The cart is only cleared after the ledger commit returns.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Checkout: failed to decode request body: %v", err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !req.Payment.Valid() {
		h.Logger.Warn("API", fmt.Sprintf("Checkout: invalid payment method %q", req.Payment))
		http.Error(w, "Payment must be cash or card", http.StatusBadRequest)
		return
	}

	var festivalWeekID *string
	if req.FestivalWeekID != "" {
		if _, ok := h.Ledger.Week(req.FestivalWeekID); !ok {
			h.Logger.Warn("API", fmt.Sprintf("Checkout: unknown festival week %s", req.FestivalWeekID))
			http.Error(w, "Festival week not found", http.StatusNotFound)
			return
		}
		festivalWeekID = &req.FestivalWeekID
	}

	order := h.Cart.Snapshot(time.Now())
	if len(order.Drinks) == 0 {
		h.Logger.Warn("API", "Checkout: cart is empty")
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	sale := h.Ledger.Record(order, req.Payment, festivalWeekID)
	h.Cart.Clear()
	h.Logger.LogSale("RECORDED", sale.ID, fmt.Sprintf("%d drinks, total %.2f via %s", len(order.Drinks), sale.Total, sale.Payment))

	resp := models.CheckoutResponse{Sale: sale}
	if h.Receipt != nil {
		png, err := h.Receipt.GenerateQR(sale)
		if err != nil {
			h.Logger.Error("RECEIPT", fmt.Sprintf("Failed to generate receipt QR for sale %s: %v", sale.ID, err))
		} else {
			resp.ReceiptQR = base64.StdEncoding.EncodeToString(png)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Checkout: failed to encode response: %v", err))
	}
}
