package storage

import (
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const (
	bucketRuns      = "runs"
	bucketRunIndex  = "run_index"
	openLockTimeout = 1 * time.Second
)

// Store wraps a bbolt database holding the scan history
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the history database at path, creating its parent
// directory and the required buckets.
func Open(path string) (*Store, error) {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: openLockTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening history db %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{bucketRuns, bucketRunIndex} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history db: %w", err)
	}

	return &Store{db: db}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.db.Path()
}

// Close closes the bbolt database
func (s *Store) Close() error {
	return s.db.Close()
}
