package stats

import (
	"fmt"
	"time"

	"juicepos/internal/models"
)

// Granularity selects the calendar bucket size for revenue reports.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

func ParseGranularity(s string) (Granularity, bool) {
	switch Granularity(s) {
	case Daily, Weekly, Monthly, Yearly:
		return Granularity(s), true
	case "":
		return Weekly, true
	}
	return "", false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
}

// bucketFor maps a sale timestamp to its bucket start and base label.
// Weekly labels carry the ISO year and week number; the service appends
// the festival-week location when the sale has one.
func bucketFor(g Granularity, t time.Time) (time.Time, string) {
	switch g {
	case Daily:
		start := startOfDay(t)
		return start, start.Format("Jan 2, 2006")
	case Weekly:
		start := models.StartOfISOWeek(t)
		year, week := start.ISOWeek()
		return start, fmt.Sprintf("%d-W%d", year, week)
	case Monthly:
		start := startOfMonth(t)
		return start, start.Format("Jan 2006")
	case Yearly:
		start := startOfYear(t)
		return start, start.Format("2006")
	}
	start := startOfDay(t)
	return start, start.Format("Jan 2, 2006")
}
