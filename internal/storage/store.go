package storage

import "errors"

// ErrNotFound reports that no blob exists under the requested key. The
// preset store relies on it to tell a first run apart from a persisted
// empty list.
var ErrNotFound = errors.New("storage: blob not found")

// Store is the durable named-blob capability the ledger and preset store
// persist through: whole collections in, whole collections out, keyed by
// name. A Set either fully succeeds or leaves the previous blob intact.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}
