package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var revisionsBucket = []byte("revisions")

var errBucketMissing = errors.New("revisions bucket missing")

// boltStore persists revisions in a single bbolt bucket so they survive restarts.
type boltStore struct {
	db      *bolt.DB
	ttl     time.Duration
	now     func() time.Time
	janitor *janitor
	once    sync.Once
}

func openBolt(path string, opts Options, now func() time.Time) (*boltStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(revisionsBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	b := &boltStore{db: db, ttl: opts.TTL, now: now}
	b.janitor = startJanitor(opts.CleanupInterval, func() { _, _ = b.sweep() })
	return b, nil
}

// Revision returns the live revision for key. Expired entries read as absent
// and are left for the janitor.
func (b *boltStore) Revision(key string) (string, bool, error) {
	var (
		rev string
		ok  bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(revisionsBucket)
		if bucket == nil {
			return errBucketMissing
		}
		e, valid := decodeEntry(bucket.Get([]byte(key)))
		if valid && e.live(b.now()) {
			rev, ok = e.rev, true
		}
		return nil
	})
	return rev, ok, err
}

func (b *boltStore) Record(key, rev string) error {
	e := entry{rev: rev, expires: b.now().Add(b.ttl).Unix()}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(revisionsBucket)
		if bucket == nil {
			return errBucketMissing
		}
		return bucket.Put([]byte(key), e.encode())
	})
}

// sweep deletes expired or undecodable entries and reports how many went.
func (b *boltStore) sweep() (int, error) {
	now := b.now()
	var stale [][]byte
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(revisionsBucket)
		if bucket == nil {
			return errBucketMissing
		}
		err := bucket.ForEach(func(k, v []byte) error {
			if e, ok := decodeEntry(v); !ok || !e.live(now) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	return len(stale), err
}

func (b *boltStore) Close() error {
	var err error
	b.once.Do(func() {
		b.janitor.stop()
		err = b.db.Close()
	})
	return err
}
