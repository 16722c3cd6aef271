package table

import (
	"errors"
	"fmt"

	"github.com/kafka-go-streams/stringslice"
	log "github.com/sirupsen/logrus"
	rocksdb "github.com/tecbot/gorocksdb"
)

// ErrNotFound is returned by Store.Get and Store.Lines for a missing key.
var ErrNotFound = errors.New("key not found")

// StoreConfig configures a Store. Either DB or StoragePath must be set. A DB
// passed in stays open after Store.Close.
type StoreConfig struct {
	StoragePath string
	DB          *rocksdb.DB
	Logger      *log.Logger
}

// Store keeps text values in RocksDB and hands them out as views over the
// memory RocksDB returned, without copying them into Go.
type Store struct {
	db    *rocksdb.DB
	ownDB bool
	ro    *rocksdb.ReadOptions
	wo    *rocksdb.WriteOptions
	log   *LogWrapper
}

// DefaultRocksDB opens (creating if needed) a database at path with an LRU
// block cache.
func DefaultRocksDB(path string) (*rocksdb.DB, error) {
	bbto := rocksdb.NewDefaultBlockBasedTableOptions()
	bbto.SetBlockCache(rocksdb.NewLRUCache(3 << 30))
	opts := rocksdb.NewDefaultOptions()
	opts.SetBlockBasedTableFactory(bbto)
	opts.SetCreateIfMissing(true)
	return rocksdb.OpenDb(opts, path)
}

func NewStore(config *StoreConfig) (*Store, error) {
	db := config.DB
	ownDB := false
	if db == nil {
		if config.StoragePath == "" {
			return nil, errors.New("store needs either a database or a storage path")
		}
		var err error
		db, err = DefaultRocksDB(config.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("open rocksdb at %s: %w", config.StoragePath, err)
		}
		ownDB = true
	}
	return &Store{
		db:    db,
		ownDB: ownDB,
		ro:    rocksdb.NewDefaultReadOptions(),
		wo:    rocksdb.NewDefaultWriteOptions(),
		log:   &LogWrapper{config.Logger},
	}, nil
}

func (s *Store) Put(key, value []byte) error {
	if err := s.db.Put(s.wo, key, value); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	s.log.logFields(log.TraceLevel, log.Fields{"key": string(key), "size": len(value)}, "Stored value")
	return nil
}

// Get returns a view over the value stored at key. The caller must Release
// it once done, and must not keep sub-slices of it past that point.
func (s *Store) Get(key []byte) (*stringslice.Pinned, error) {
	value, err := s.db.Get(s.ro, key)
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	p := stringslice.Pin(value)
	if !p.Exists() {
		p.Release()
		return nil, ErrNotFound
	}
	return p, nil
}

// Lines calls fn with each line of the value at key until fn returns false.
// Lines are only valid inside fn.
func (s *Store) Lines(key []byte, fn func(line stringslice.Slice) bool) error {
	p, err := s.Get(key)
	if err != nil {
		return err
	}
	defer p.Release()
	stringslice.SplitLines(p.Slice, fn)
	return nil
}

// Close releases the store's options, and the database if the store opened
// it.
func (s *Store) Close() {
	s.ro.Destroy()
	s.wo.Destroy()
	if s.ownDB {
		s.db.Close()
	}
}
