package presets

import (
	"encoding/json"
	"fmt"
	"sync"

	"juicepos/internal/logger"
	"juicepos/internal/models"
	"juicepos/internal/pricing"
	"juicepos/internal/storage"
)

const presetsKey = "presets.v1"

// Store holds the named drink shortcuts. The full list persists on every
// mutation, same contract as the ledger.
type Store struct {
	mu      sync.Mutex
	presets []models.Preset
	store   storage.Store
	logger  *logger.Logger
}

// NewStore loads the persisted presets. On a true first run (no blob at
// all) it seeds the two example presets and persists them; a persisted
// empty list stays empty, deleting everything must not resurrect the
// examples.
func NewStore(store storage.Store, log *logger.Logger) *Store {
	s := &Store{store: store, logger: log}

	data, err := store.Get(presetsKey)
	if err == storage.ErrNotFound {
		s.mu.Lock()
		s.presets = defaultPresets()
		s.persistLocked()
		s.mu.Unlock()
		return s
	}
	if err != nil {
		if log != nil {
			log.Warn("PRESETS", fmt.Sprintf("Failed to load presets, starting empty: %v", err))
		}
		return s
	}

	if err := json.Unmarshal(data, &s.presets); err != nil {
		if log != nil {
			log.Warn("PRESETS", fmt.Sprintf("Corrupt presets blob, starting empty: %v", err))
		}
		s.presets = nil
	}
	return s
}

func defaultPresets() []models.Preset {
	return []models.Preset{
		models.NewPreset(
			"Mango + Pineapple • Boba",
			models.CupPlain,
			[]models.Flavour{models.FlavourMango, models.FlavourPineapple},
			[]models.AddOn{models.AddOnBoba},
		),
		models.NewPreset(
			"Watermelon Shell",
			models.CupWatermelonShell,
			[]models.Flavour{models.FlavourWatermelon},
			[]models.AddOn{},
		),
	}
}

func (s *Store) Add(p models.Preset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.presets = append(s.presets, p)
	s.persistLocked()
}

// RemoveAt drops the presets at the given indexes; out-of-range indexes
// are ignored.
func (s *Store) RemoveAt(indexes []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		if idx >= 0 && idx < len(s.presets) {
			drop[idx] = true
		}
	}
	if len(drop) == 0 {
		return
	}

	kept := s.presets[:0]
	for i := range s.presets {
		if !drop[i] {
			kept = append(kept, s.presets[i])
		}
	}
	s.presets = kept
	s.persistLocked()
}

func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.presets {
		if s.presets[i].ID == id {
			s.presets = append(s.presets[:i], s.presets[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

func (s *Store) ReplaceAll(presets []models.Preset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.presets = append([]models.Preset(nil), presets...)
	s.persistLocked()
}

func (s *Store) Presets() []models.Preset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Preset, len(s.presets))
	copy(out, s.presets)
	return out
}

func (s *Store) Get(id string) (models.Preset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.presets {
		if p.ID == id {
			return p, true
		}
	}
	return models.Preset{}, false
}

// Expand builds a drink from the preset at current pricing rules. A
// preset never stores a price.
func Expand(p models.Preset) models.Drink {
	return pricing.BuildDrink(p.Cup, p.AddOns, p.Flavours)
}

func (s *Store) persistLocked() {
	data, err := json.Marshal(s.presets)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("PRESETS", fmt.Sprintf("Failed to serialize presets: %v", err))
		}
		return
	}
	if err := s.store.Set(presetsKey, data); err != nil {
		if s.logger != nil {
			s.logger.Error("PRESETS", fmt.Sprintf("Failed to persist presets, in-memory state remains authoritative: %v", err))
		}
	}
}
