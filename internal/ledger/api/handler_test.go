package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"juicepos/internal/ledger"
	"juicepos/internal/ledger/api"
	"juicepos/internal/logger"
	"juicepos/internal/models"
	"juicepos/internal/storage"
)

type memStore struct {
	blobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{blobs: map[string][]byte{}}
}

func (m *memStore) Get(key string) ([]byte, error) {
	value, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return value, nil
}

func (m *memStore) Set(key string, value []byte) error {
	m.blobs[key] = value
	return nil
}

type fixture struct {
	router *chi.Mux
	ledger *ledger.SalesStore
}

func setup(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		router: chi.NewRouter(),
		ledger: ledger.NewSalesStore(newMemStore(), nil, nil),
	}
	h := &api.Handler{Ledger: f.ledger, Logger: &logger.Logger{}}
	h.RegisterRoutes(f.router)
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateWeekNormalizesAndLists(t *testing.T) {
	f := setup(t)

	wednesday := time.Date(2025, 9, 10, 14, 0, 0, 0, time.UTC)
	req := models.CreateWeekRequest{LocationName: "Richmond Night Market", Date: &wednesday}

	rec := f.do(t, http.MethodPost, "/weeks", req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var week models.FestivalWeek
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&week))
	assert.Equal(t, "Richmond Night Market", week.LocationName)
	assert.Equal(t, time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC), week.WeekStart)

	rec = f.do(t, http.MethodGet, "/weeks", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var weeks []models.FestivalWeek
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&weeks))
	assert.Len(t, weeks, 1)
	assert.Equal(t, week.ID, weeks[0].ID)
}

func TestCreateWeekRequiresLocation(t *testing.T) {
	f := setup(t)

	rec := f.do(t, http.MethodPost, "/weeks", models.CreateWeekRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.ledger.Weeks())
}

func TestGetWeek(t *testing.T) {
	f := setup(t)
	week := f.ledger.CreateWeek("PNE", time.Now())

	rec := f.do(t, http.MethodGet, "/weeks/"+week.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var found models.FestivalWeek
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&found))
	assert.Equal(t, "PNE", found.LocationName)
}

func TestGetWeekNotFound(t *testing.T) {
	f := setup(t)

	rec := f.do(t, http.MethodGet, "/weeks/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSales(t *testing.T) {
	f := setup(t)

	// Empty ledger serves an empty array, not null.
	rec := f.do(t, http.MethodGet, "/sales", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	drink := models.Drink{
		Selection: []models.Flavour{models.FlavourMango},
		CupType:   models.CupPlain,
		AddOns:    []models.AddOn{},
		Price:     10.00,
	}
	sale := f.ledger.Record(models.NewOrder([]models.Drink{drink}, time.Now()), models.PaymentCash, nil)

	rec = f.do(t, http.MethodGet, "/sales", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var sales []models.Sale
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&sales))
	assert.Len(t, sales, 1)
	assert.Equal(t, sale.ID, sales[0].ID)
}
