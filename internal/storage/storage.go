package storage

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes partition the single badger keyspace between the two
// things this process persists across restarts: NNUE weights signatures
// (so a changed weights file is noticed without re-hashing it) and
// tablebase probe results (so online/local lookups survive a restart).
const (
	prefixSignature = "sig/"
	prefixTB        = "tb/"
)

// Store wraps a BadgerDB instance rooted at the platform data directory.
type Store struct {
	db *badger.DB
}

// Open opens (creating if needed) the persistent store.
func Open() (*Store, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// WeightsSignature returns the previously recorded signature for a weights
// file path, and whether one was found.
func (s *Store) WeightsSignature(path string) (uint32, bool, error) {
	var sig uint32
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixSignature + path))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			if len(val) == 4 {
				sig = binary.LittleEndian.Uint32(val)
			}
			return nil
		})
	})

	return sig, found, err
}

// SetWeightsSignature records the signature last seen for a weights file.
func (s *Store) SetWeightsSignature(path string, sig uint32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, sig)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixSignature+path), buf)
	})
}

// TablebaseEntry fetches a previously cached probe payload for a position
// hash. The payload encoding is owned by the tablebase package.
func (s *Store) TablebaseEntry(hash uint64) ([]byte, bool, error) {
	var data []byte
	found := false

	key := tbKey(hash)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			data = append([]byte(nil), val...)
			return nil
		})
	})

	return data, found, err
}

// SetTablebaseEntry persists a probe payload for a position hash.
func (s *Store) SetTablebaseEntry(hash uint64, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tbKey(hash), data)
	})
}

func tbKey(hash uint64) []byte {
	key := make([]byte, len(prefixTB)+8)
	copy(key, prefixTB)
	binary.LittleEndian.PutUint64(key[len(prefixTB):], hash)
	return key
}
