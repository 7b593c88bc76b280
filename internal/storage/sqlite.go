package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"
)

// Blob is one persisted collection, serialized as JSON under its key.
type Blob struct {
	bun.BaseModel `bun:"table:blobs"`

	Key       string    `bun:"key,pk"`
	Value     []byte    `bun:"value"`
	UpdatedAt time.Time `bun:"updated_at"`
}

// BlobDB stores blobs in an embedded SQLite file. Each Set is a single
// upsert statement, so a failed write leaves the previous row untouched.
type BlobDB struct {
	Bun *bun.DB
}

// OpenSQLite opens (or creates) the database file and ensures the blobs
// table exists.
func OpenSQLite(path string) (*BlobDB, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = bunDB.NewCreateTable().
		Model((*Blob)(nil)).
		IfNotExists().
		Exec(context.Background())
	if err != nil {
		bunDB.Close()
		return nil, err
	}

	return &BlobDB{Bun: bunDB}, nil
}

func (d *BlobDB) Get(key string) ([]byte, error) {
	var blob Blob
	err := d.Bun.NewSelect().
		Model(&blob).
		Where("key = ?", key).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return blob.Value, nil
}

func (d *BlobDB) Set(key string, value []byte) error {
	blob := Blob{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	_, err := d.Bun.NewInsert().
		Model(&blob).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(context.Background())
	return err
}

func (d *BlobDB) Close() error {
	return d.Bun.Close()
}
