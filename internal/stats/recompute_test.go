package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"juicepos/internal/models"
	"juicepos/internal/stats"
)

// gatedLedger blocks every Sales call until released, so a test can hold
// a recompute run in flight while a newer one supersedes it.
type gatedLedger struct {
	release chan struct{}
	sales   []models.Sale
}

func (g *gatedLedger) Sales() []models.Sale {
	<-g.release
	out := make([]models.Sale, len(g.sales))
	copy(out, g.sales)
	return out
}

func (g *gatedLedger) Week(string) (models.FestivalWeek, bool) {
	return models.FestivalWeek{}, false
}

func TestLatestEmptyBeforeAnySubmit(t *testing.T) {
	r := stats.NewRecomputer(stats.NewService(&fakeLedger{}))

	_, ok := r.Latest()
	assert.False(t, ok)
}

func TestSubmitPublishesResult(t *testing.T) {
	ledger := &fakeLedger{}
	ts := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	ledger.addSale(ts, models.PaymentCash, nil, mangoCup())

	service := stats.NewService(ledger)
	r := stats.NewRecomputer(service)

	q := span(ts.AddDate(0, 0, -1), ts.AddDate(0, 0, 1), stats.Daily)
	r.Submit(q)
	r.Wait()

	result, ok := r.Latest()
	assert.True(t, ok)
	assert.Equal(t, q, result.Query)
	assert.Equal(t, service.Revenue(q).GrandTotal, result.Revenue.GrandTotal)
	assert.Equal(t, service.FlavourCounts(q).GrandCups, result.Flavours.GrandCups)
}

func TestNewerSubmitWins(t *testing.T) {
	ledger := &gatedLedger{release: make(chan struct{})}
	ts := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	order := models.NewOrder([]models.Drink{mangoCup()}, ts)
	ledger.sales = []models.Sale{models.NewSale(order, models.PaymentCash, nil)}

	r := stats.NewRecomputer(stats.NewService(ledger))

	first := span(ts.AddDate(0, 0, -1), ts.AddDate(0, 0, 1), stats.Daily)
	second := span(ts.AddDate(0, -1, 0), ts.AddDate(0, 0, 1), stats.Monthly)

	// Both runs stall inside the ledger until released; the second
	// submission supersedes the first before either can finish.
	r.Submit(first)
	r.Submit(second)
	close(ledger.release)
	r.Wait()

	result, ok := r.Latest()
	assert.True(t, ok)
	assert.Equal(t, second, result.Query)
	assert.Equal(t, 10.00, result.Revenue.GrandTotal)
}

func TestResubmitSameQueryStillPublishes(t *testing.T) {
	ledger := &fakeLedger{}
	ts := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	ledger.addSale(ts, models.PaymentCash, nil, mangoCup())

	r := stats.NewRecomputer(stats.NewService(ledger))
	q := span(ts.AddDate(0, 0, -1), ts.AddDate(0, 0, 1), stats.Weekly)

	r.Submit(q)
	r.Wait()
	r.Submit(q)
	r.Wait()

	result, ok := r.Latest()
	assert.True(t, ok)
	assert.Equal(t, q, result.Query)
}
