package ledger

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"juicepos/internal/logger"
	"juicepos/internal/models"
	"juicepos/internal/storage"
)

const (
	weeksKey = "festival_weeks.v1"
	salesKey = "sales.v1"
)

// SalePublisher streams committed sales to interested consumers. Publish
// failures never fail the sale.
type SalePublisher interface {
	PublishSaleRecorded(sale models.Sale) error
}

// SalesStore is the append-only ledger of committed sales and festival
// weeks. Every mutation persists the full collection before returning;
// if the write fails, the in-memory state stays authoritative for the
// rest of the process and the previous durable snapshot is untouched.
//
// There is no update or delete: corrections are new compensating sales.
type SalesStore struct {
	mu        sync.Mutex
	weeks     []models.FestivalWeek
	sales     []models.Sale
	store     storage.Store
	publisher SalePublisher
	logger    *logger.Logger
}

// NewSalesStore loads both collections from the blob store. A missing or
// corrupt blob starts that collection empty; the next successful
// mutation overwrites it.
func NewSalesStore(store storage.Store, publisher SalePublisher, log *logger.Logger) *SalesStore {
	s := &SalesStore{
		store:     store,
		publisher: publisher,
		logger:    log,
	}
	s.weeks = loadCollection[models.FestivalWeek](store, weeksKey, log)
	s.sales = loadCollection[models.Sale](store, salesKey, log)
	return s
}

// CreateWeek normalizes the reference date to its ISO week and inserts
// the new week at the front (most-recent-first). No dedup: two weeks for
// the same location and period are two distinct entities.
func (s *SalesStore) CreateWeek(locationName string, reference time.Time) models.FestivalWeek {
	week := models.NewFestivalWeek(locationName, reference)

	s.mu.Lock()
	s.weeks = append([]models.FestivalWeek{week}, s.weeks...)
	weeks := append([]models.FestivalWeek(nil), s.weeks...)
	s.mu.Unlock()

	s.persist(weeksKey, weeks)
	return week
}

// Record is the sole mutation that creates a sale. Totals are computed
// by the sale constructor and frozen.
func (s *SalesStore) Record(order models.Order, payment models.PaymentMethod, festivalWeekID *string) models.Sale {
	sale := models.NewSale(order, payment, festivalWeekID)

	s.mu.Lock()
	s.sales = append([]models.Sale{sale}, s.sales...)
	sales := append([]models.Sale(nil), s.sales...)
	s.mu.Unlock()

	s.persist(salesKey, sales)

	if s.publisher != nil {
		if err := s.publisher.PublishSaleRecorded(sale); err != nil {
			s.logError("KAFKA", fmt.Sprintf("Failed to publish sale %s: %v", sale.ID, err))
		}
	}

	return sale
}

// Week looks up a festival week by id.
func (s *SalesStore) Week(id string) (models.FestivalWeek, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.weeks {
		if w.ID == id {
			return w, true
		}
	}
	return models.FestivalWeek{}, false
}

// Weeks returns a copy, most recent first.
func (s *SalesStore) Weeks() []models.FestivalWeek {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.FestivalWeek, len(s.weeks))
	copy(out, s.weeks)
	return out
}

// Sales returns a copy, most recent first. The stats aggregator works on
// this snapshot so a concurrent Record can't shift the slice under it.
func (s *SalesStore) Sales() []models.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

func (s *SalesStore) persist(key string, collection any) {
	data, err := json.Marshal(collection)
	if err != nil {
		s.logError("LEDGER", fmt.Sprintf("Failed to serialize %s: %v", key, err))
		return
	}
	if err := s.store.Set(key, data); err != nil {
		s.logError("LEDGER", fmt.Sprintf("Failed to persist %s, in-memory state remains authoritative: %v", key, err))
	}
}

func (s *SalesStore) logError(category, message string) {
	if s.logger != nil {
		s.logger.Error(category, message)
	}
}

func loadCollection[T any](store storage.Store, key string, log *logger.Logger) []T {
	data, err := store.Get(key)
	if err != nil {
		if err != storage.ErrNotFound && log != nil {
			log.Warn("LEDGER", fmt.Sprintf("Failed to load %s, starting empty: %v", key, err))
		}
		return nil
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		if log != nil {
			log.Warn("LEDGER", fmt.Sprintf("Corrupt %s blob, starting empty: %v", key, err))
		}
		return nil
	}
	return out
}
