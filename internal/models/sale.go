package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentCard
}

// CardSurchargePerDrink is charged per drink on card payments. Watermelon
// shells are exempt.
const CardSurchargePerDrink = 1.00

// FestivalWeek groups sales under a location for one ISO calendar week.
type FestivalWeek struct {
	ID           string    `json:"id"`
	LocationName string    `json:"locationName"`
	WeekStart    time.Time `json:"weekStart"`
	WeekEnd      time.Time `json:"weekEnd"`
}

// NewFestivalWeek normalizes any reference date to its ISO week: Monday
// 00:00:00 through Sunday 23:59:59. Two dates in the same week always
// produce the same span.
func NewFestivalWeek(locationName string, reference time.Time) FestivalWeek {
	start := StartOfISOWeek(reference)
	end := start.AddDate(0, 0, 7).Add(-time.Second)
	return FestivalWeek{
		ID:           uuid.NewString(),
		LocationName: locationName,
		WeekStart:    start,
		WeekEnd:      end,
	}
}

// StartOfISOWeek truncates t to the Monday 00:00:00 of its ISO week,
// keeping t's location.
func StartOfISOWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}

// Sale is a committed transaction. Totals are computed once at
// construction and never recomputed; the ledger is append-only, so a
// correction is a new compensating sale, not a mutation.
type Sale struct {
	ID             string        `json:"id"`
	Order          Order         `json:"order"`
	Payment        PaymentMethod `json:"payment"`
	FestivalWeekID *string       `json:"festivalWeekId"`
	Subtotal       float64       `json:"subtotal"`
	Surcharge      float64       `json:"surcharge"`
	Total          float64       `json:"total"`
}

// NewSale freezes subtotal, surcharge and total. The surcharge is $1 per
// drink on card payments, waived for watermelon-shell drinks.
func NewSale(order Order, payment PaymentMethod, festivalWeekID *string) Sale {
	var subtotal float64
	nonExempt := 0
	for _, d := range order.Drinks {
		subtotal += d.Price
		if d.CupType != CupWatermelonShell {
			nonExempt++
		}
	}

	var surcharge float64
	if payment == PaymentCard {
		surcharge = float64(nonExempt) * CardSurchargePerDrink
	}

	return Sale{
		ID:             uuid.NewString(),
		Order:          order,
		Payment:        payment,
		FestivalWeekID: festivalWeekID,
		Subtotal:       subtotal,
		Surcharge:      surcharge,
		Total:          subtotal + surcharge,
	}
}

// Week returns the linked festival week id, comma-ok style, so callers
// spell out the unassigned case.
func (s Sale) Week() (string, bool) {
	if s.FestivalWeekID == nil || *s.FestivalWeekID == "" {
		return "", false
	}
	return *s.FestivalWeekID, true
}

func (s Sale) Timestamp() time.Time {
	return s.Order.Timestamp
}

type CreateWeekRequest struct {
	LocationName string     `json:"locationName"`
	Date         *time.Time `json:"date,omitempty"`
}
