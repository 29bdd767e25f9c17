package storage

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var (
	documentsBucket = []byte("documents")
	revisionsBucket = []byte("revisions")
)

// BoltStore is a DocumentStore backed by a single bbolt file. It is the
// on-disk analog of the browser key-value storage the document format
// originally lived in.
type BoltStore struct {
	db     *bolt.DB
	logger *zap.Logger
}

var _ DocumentStore = (*BoltStore)(nil)

// OpenBolt opens (or creates) the store file at path
func OpenBolt(path string, logger *zap.Logger) (*BoltStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(documentsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(revisionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	logger.Info("document store opened", zap.String("path", path))

	return &BoltStore{db: db, logger: logger}, nil
}

// Load reads the document stored under key
func (s *BoltStore) Load(ctx context.Context, key string) ([]byte, uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var data []byte
	var revision uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(documentsBucket).Get([]byte(key))
		if raw == nil {
			return ErrNotFound
		}
		// Bolt-owned memory is only valid inside the transaction.
		data = append([]byte(nil), raw...)
		revision = readRevision(tx, key)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return data, revision, nil
}

// Save replaces the document under key if expectedRevision still matches
func (s *BoltStore) Save(ctx context.Context, key string, data []byte, expectedRevision uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var newRevision uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		current := readRevision(tx, key)
		if current != expectedRevision {
			s.logger.Warn("rejected stale document write",
				zap.String("key", key),
				zap.Uint64("expected_revision", expectedRevision),
				zap.Uint64("stored_revision", current),
			)
			return ErrRevisionConflict
		}

		if err := tx.Bucket(documentsBucket).Put([]byte(key), data); err != nil {
			return err
		}

		newRevision = current + 1
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], newRevision)
		return tx.Bucket(revisionsBucket).Put([]byte(key), buf[:])
	})
	if err != nil {
		return 0, err
	}

	return newRevision, nil
}

// Close releases the store file
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func readRevision(tx *bolt.Tx, key string) uint64 {
	raw := tx.Bucket(revisionsBucket).Get([]byte(key))
	if len(raw) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}
