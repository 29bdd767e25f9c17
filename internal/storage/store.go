package storage

import (
	"context"
	"errors"
)

// Keys under which the clinic document and its single-slot backup live.
// The backup slot is overwritten on every import; it is not a history.
const (
	DatabaseKey = "ems_database"
	BackupKey   = "ems_database_backup"
)

var (
	// ErrNotFound is returned when no document exists under the key.
	ErrNotFound = errors.New("document not found")
	// ErrRevisionConflict is returned when a save races with another
	// writer: the stored revision no longer matches the expected one.
	ErrRevisionConflict = errors.New("document revision conflict")
)

// DocumentStore persists whole serialized documents under string keys.
// Every write replaces the full document. Save enforces optimistic
// concurrency: a key that does not exist yet has revision 0, and the write
// is rejected with ErrRevisionConflict unless expectedRevision matches the
// currently stored revision.
type DocumentStore interface {
	Load(ctx context.Context, key string) (data []byte, revision uint64, err error)
	Save(ctx context.Context, key string, data []byte, expectedRevision uint64) (newRevision uint64, err error)
	Close() error
}
