package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"juicepos/internal/storage"
)

func setupTestDB(t *testing.T) *storage.BlobDB {
	db, err := storage.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetMissingKeyReturnsErrNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Get("sales.v1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSetAndGet(t *testing.T) {
	db := setupTestDB(t)

	err := db.Set("sales.v1", []byte(`[{"id":"abc"}]`))
	assert.NoError(t, err)

	value, err := db.Get("sales.v1")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"abc"}]`), value)
}

func TestSetOverwritesPreviousBlob(t *testing.T) {
	db := setupTestDB(t)

	assert.NoError(t, db.Set("presets.v1", []byte(`["old"]`)))
	assert.NoError(t, db.Set("presets.v1", []byte(`["new"]`)))

	value, err := db.Get("presets.v1")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`["new"]`), value)
}

func TestKeysAreIndependent(t *testing.T) {
	db := setupTestDB(t)

	assert.NoError(t, db.Set("sales.v1", []byte(`[1]`)))
	assert.NoError(t, db.Set("festival_weeks.v1", []byte(`[2]`)))

	sales, err := db.Get("sales.v1")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), sales)

	weeks, err := db.Get("festival_weeks.v1")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[2]`), weeks)
}
