package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is a cart line: one drink configuration with a quantity.
type OrderItem struct {
	ID       string `json:"id"`
	Drink    Drink  `json:"drink"`
	Quantity int    `json:"quantity"`
}

func NewOrderItem(drink Drink, quantity int) OrderItem {
	if quantity < 1 {
		quantity = 1
	}
	return OrderItem{
		ID:       uuid.NewString(),
		Drink:    drink,
		Quantity: quantity,
	}
}

func (i OrderItem) UnitPrice() float64 {
	return i.Drink.Price
}

func (i OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.Drink.Price
}

// Order is the immutable checkout snapshot of a cart. Drinks is flat:
// quantity N of a line becomes N repeated entries, one per physical cup.
type Order struct {
	ID        string    `json:"id"`
	Drinks    []Drink   `json:"drinks"`
	Timestamp time.Time `json:"timestamp"`
}

func NewOrder(drinks []Drink, timestamp time.Time) Order {
	return Order{
		ID:        uuid.NewString(),
		Drinks:    drinks,
		Timestamp: timestamp,
	}
}

type AddItemRequest struct {
	Selection []Flavour `json:"selection"`
	CupType   CupType   `json:"cupType"`
	AddOns    []AddOn   `json:"addOns"`
	Quantity  int       `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	Payment        PaymentMethod `json:"payment"`
	FestivalWeekID string        `json:"festivalWeekId,omitempty"`
}

type CheckoutResponse struct {
	Sale      Sale   `json:"sale"`
	ReceiptQR string `json:"receiptQr,omitempty"`
}

type CartResponse struct {
	Items []OrderItem `json:"items"`
	Total float64     `json:"total"`
}
