package stats

import (
	"fmt"
	"sort"
	"time"

	"juicepos/internal/models"
)

// Ledger is the read side the aggregator needs: a consistent snapshot of
// the sales and week lookups for labels.
type Ledger interface {
	Sales() []models.Sale
	Week(id string) (models.FestivalWeek, bool)
}

// WeekFilter narrows a report to a single festival week. The zero value
// means "all weeks"; callers choose explicitly via AllWeeks or OnlyWeek.
type WeekFilter struct {
	id  string
	set bool
}

func AllWeeks() WeekFilter {
	return WeekFilter{}
}

func OnlyWeek(id string) WeekFilter {
	return WeekFilter{id: id, set: true}
}

func (f WeekFilter) Matches(sale models.Sale) bool {
	if !f.set {
		return true
	}
	weekID, ok := sale.Week()
	return ok && weekID == f.id
}

// Query parameterizes a report: an inclusive date span, a week filter
// and a bucket granularity.
type Query struct {
	From        time.Time   `json:"from"`
	To          time.Time   `json:"to"`
	Week        WeekFilter  `json:"-"`
	Granularity Granularity `json:"granularity"`
}

type RevenuePoint struct {
	BucketStart time.Time `json:"bucketStart"`
	Label       string    `json:"label"`
	Total       float64   `json:"total"`
}

type RevenueReport struct {
	Points     []RevenuePoint `json:"points"`
	GrandTotal float64        `json:"grandTotal"`
}

type FlavourCount struct {
	Flavour models.Flavour `json:"flavour"`
	Cups    float64        `json:"cups"`
}

type FlavourReport struct {
	Rows      []FlavourCount `json:"rows"`
	GrandCups float64        `json:"grandCups"`
}

// Service computes reports over the ledger's current sales. Every call
// is a full recompute on a snapshot; the data volume is one operator's
// sales, so there is nothing to stream or cache.
type Service struct {
	Ledger Ledger
}

func NewService(ledger Ledger) *Service {
	return &Service{Ledger: ledger}
}

func (s *Service) filtered(q Query) []models.Sale {
	var out []models.Sale
	for _, sale := range s.Ledger.Sales() {
		ts := sale.Timestamp()
		if ts.Before(q.From) || ts.After(q.To) {
			continue
		}
		if !q.Week.Matches(sale) {
			continue
		}
		out = append(out, sale)
	}
	return out
}

// Recent returns the sales in the span, newest first.
func (s *Service) Recent(q Query) []models.Sale {
	sales := s.filtered(q)
	sort.Slice(sales, func(i, j int) bool {
		return sales[i].Timestamp().After(sales[j].Timestamp())
	})
	return sales
}

// Revenue buckets the filtered sales by calendar period and sums totals
// per bucket. The grand total equals the sum of every included sale's
// total, so the report reconciles against the ledger.
func (s *Service) Revenue(q Query) RevenueReport {
	type bucket struct {
		start time.Time
		label string
		total float64
	}
	buckets := make(map[string]bucket)

	for _, sale := range s.filtered(q) {
		start, label := bucketFor(q.Granularity, sale.Timestamp())
		if q.Granularity == Weekly {
			if weekID, ok := sale.Week(); ok {
				if week, found := s.Ledger.Week(weekID); found {
					label = fmt.Sprintf("%s - %s", label, week.LocationName)
				}
			}
		}

		key := fmt.Sprintf("%s|%d", label, start.Unix())
		b := buckets[key]
		b.start = start
		b.label = label
		b.total += sale.Total
		buckets[key] = b
	}

	report := RevenueReport{Points: make([]RevenuePoint, 0, len(buckets))}
	for _, b := range buckets {
		report.Points = append(report.Points, RevenuePoint{
			BucketStart: b.start,
			Label:       b.label,
			Total:       b.total,
		})
	}

	sort.Slice(report.Points, func(i, j int) bool {
		if !report.Points[i].BucketStart.Equal(report.Points[j].BucketStart) {
			return report.Points[i].BucketStart.Before(report.Points[j].BucketStart)
		}
		return report.Points[i].Label < report.Points[j].Label
	})

	for _, p := range report.Points {
		report.GrandTotal += p.Total
	}
	return report
}

// FlavourCounts attributes each drink's one cup across its flavours in
// equal shares: a single-flavour drink adds 1.0, a 50/50 mix adds 0.5 to
// each. Every flavour on the menu gets a row, zeros included. The grand
// total sums every share, so it equals the number of physical cups sold
// even when the ledger holds a flavour that is no longer on the menu.
func (s *Service) FlavourCounts(q Query) FlavourReport {
	counts := make(map[models.Flavour]float64)

	for _, sale := range s.filtered(q) {
		for _, drink := range sale.Order.Drinks {
			n := len(drink.Selection)
			if n < 1 {
				n = 1
			}
			per := 1.0 / float64(n)
			for _, flavour := range drink.Selection {
				counts[flavour] += per
			}
		}
	}

	report := FlavourReport{Rows: make([]FlavourCount, 0, len(models.AllFlavours))}
	for _, flavour := range models.AllFlavours {
		report.Rows = append(report.Rows, FlavourCount{Flavour: flavour, Cups: counts[flavour]})
	}
	for _, cups := range counts {
		report.GrandCups += cups
	}
	return report
}
