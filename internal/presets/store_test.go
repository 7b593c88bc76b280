package presets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"juicepos/internal/models"
	"juicepos/internal/presets"
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

func TestFirstRunSeedsExamplePresets(t *testing.T) {
	store := newMemStore()

	s := presets.NewStore(store, nil)

	list := s.Presets()
	assert.Len(t, list, 2)
	assert.Equal(t, "Mango + Pineapple • Boba", list[0].Name)
	assert.Equal(t, "Watermelon Shell", list[1].Name)

	// The seed is persisted immediately.
	assert.Contains(t, store.blobs, "presets.v1")
}

func TestEmptyPersistedListDoesNotReseed(t *testing.T) {
	store := newMemStore()

	s := presets.NewStore(store, nil)
	s.ReplaceAll(nil)
	assert.Empty(t, s.Presets())

	// A later start with the persisted empty list stays empty.
	reloaded := presets.NewStore(store, nil)
	assert.Empty(t, reloaded.Presets())
}

func TestCorruptBlobStartsEmptyWithoutSeeding(t *testing.T) {
	store := newMemStore()
	store.blobs["presets.v1"] = []byte("not json")

	s := presets.NewStore(store, nil)
	assert.Empty(t, s.Presets())
}

func TestAddPersists(t *testing.T) {
	store := newMemStore()
	s := presets.NewStore(store, nil)

	p := models.NewPreset("Taro", models.CupPlain, []models.Flavour{models.FlavourTaro}, nil)
	s.Add(p)

	reloaded := presets.NewStore(store, nil)
	list := reloaded.Presets()
	assert.Len(t, list, 3)
	assert.Equal(t, "Taro", list[2].Name)
}

func TestRemoveAtIgnoresOutOfRange(t *testing.T) {
	s := presets.NewStore(newMemStore(), nil)

	s.RemoveAt([]int{0, 42, -3})

	list := s.Presets()
	assert.Len(t, list, 1)
	assert.Equal(t, "Watermelon Shell", list[0].Name)
}

func TestRemoveByID(t *testing.T) {
	s := presets.NewStore(newMemStore(), nil)
	list := s.Presets()

	s.Remove(list[0].ID)
	assert.Len(t, s.Presets(), 1)

	s.Remove("missing")
	assert.Len(t, s.Presets(), 1)
}

func TestGet(t *testing.T) {
	s := presets.NewStore(newMemStore(), nil)
	list := s.Presets()

	found, ok := s.Get(list[1].ID)
	assert.True(t, ok)
	assert.Equal(t, "Watermelon Shell", found.Name)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestExpandPricesAtCurrentRules(t *testing.T) {
	p := models.NewPreset(
		"Watermelon Shell",
		models.CupWatermelonShell,
		[]models.Flavour{models.FlavourWatermelon},
		[]models.AddOn{},
	)

	drink := presets.Expand(p)

	assert.Equal(t, 15.00, drink.Price)
	assert.Equal(t, models.CupWatermelonShell, drink.CupType)
	assert.Equal(t, []models.Flavour{models.FlavourWatermelon}, drink.Selection)
}
