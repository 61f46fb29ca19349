package packstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"bindery/internal/record"
)

// ErrNotFound is returned by Get when no entry exists under the given key.
var ErrNotFound = errors.New("packstore: entry not found")

var bucketDocuments = []byte("documents")

// Store is one on-disk compendium pack.
type Store struct {
	db   *bolt.DB
	path string
}

// Create removes any prior store at path and opens a fresh, empty one.
func Create(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create pack directory: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove previous pack %q: %w", path, err)
	}

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open pack %q: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init pack %q: %w", path, err)
	}
	return &Store{db: db, path: path}, nil
}

// Open opens an existing pack for reading.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat pack %q: %w", path, err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("open pack %q: %w", path, err)
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location of the pack.
func (s *Store) Path() string { return s.path }

// WriteBatch commits every entry in one transaction. Either all entries land
// or none do.
func (s *Store) WriteBatch(entries []record.Entry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return fmt.Errorf("pack %q: documents bucket missing", s.path)
		}
		for _, entry := range entries {
			value, err := json.Marshal(entry.Value)
			if err != nil {
				return fmt.Errorf("marshal entry %q: %w", entry.Key, err)
			}
			if err := bucket.Put([]byte(entry.Key), value); err != nil {
				return fmt.Errorf("write entry %q: %w", entry.Key, err)
			}
		}
		return nil
	})
}

// Get returns the document stored under key, or ErrNotFound.
func (s *Store) Get(key string) (map[string]any, error) {
	var doc map[string]any
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return fmt.Errorf("pack %q: documents bucket missing", s.path)
		}
		value := bucket.Get([]byte(key))
		if value == nil {
			return ErrNotFound
		}
		return json.Unmarshal(value, &doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ForEach visits every entry in ascending key order. Returning an error from
// fn stops the walk and propagates the error.
func (s *Store) ForEach(fn func(key string, doc map[string]any) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return fmt.Errorf("pack %q: documents bucket missing", s.path)
		}
		return bucket.ForEach(func(k, v []byte) error {
			var doc map[string]any
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("decode entry %q: %w", string(k), err)
			}
			return fn(string(k), doc)
		})
	})
}

// Len returns the number of entries in the pack.
func (s *Store) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return fmt.Errorf("pack %q: documents bucket missing", s.path)
		}
		n = bucket.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
