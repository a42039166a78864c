// Package storage remembers the last relayed revision of every item key, so
// unchanged records are not published twice.
package storage

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// Store maps item keys to the revision last relayed for them.
// Entries expire after the configured TTL.
type Store interface {
	Revision(key string) (rev string, ok bool, err error)
	Record(key, rev string) error
	Close() error
}

// Options controls retention for concrete stores.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

const (
	TypeNone   = "none"
	TypeMemory = "memory"
	TypeBBolt  = "bbolt"

	defaultTTL             = 24 * time.Hour
	defaultCleanupInterval = 6 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}

	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "", TypeNone, "disabled":
		return noopStore{}, nil
	case TypeMemory:
		return newMemoryStore(opts, time.Now), nil
	case TypeBBolt:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		store, err := openBolt(path, opts, time.Now)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// entry is a stored revision plus its expiry.
// Encoded as 8 bytes of big-endian expiry (unix seconds) followed by the revision.
type entry struct {
	rev     string
	expires int64
}

func (e entry) live(now time.Time) bool { return e.expires > now.Unix() }

func (e entry) encode() []byte {
	buf := make([]byte, 8+len(e.rev))
	binary.BigEndian.PutUint64(buf, uint64(e.expires))
	copy(buf[8:], e.rev)
	return buf
}

func decodeEntry(b []byte) (entry, bool) {
	if len(b) < 8 {
		return entry{}, false
	}
	return entry{expires: int64(binary.BigEndian.Uint64(b[:8])), rev: string(b[8:])}, true
}

// janitor runs sweep every interval until stop is called.
type janitor struct {
	done chan struct{}
	wait chan struct{}
}

func startJanitor(interval time.Duration, sweep func()) *janitor {
	j := &janitor{done: make(chan struct{}), wait: make(chan struct{})}
	go func() {
		defer close(j.wait)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-j.done:
				return
			case <-ticker.C:
				sweep()
			}
		}
	}()
	return j
}

func (j *janitor) stop() {
	close(j.done)
	<-j.wait
}

type noopStore struct{}

func (noopStore) Revision(string) (string, bool, error) { return "", false, nil }
func (noopStore) Record(string, string) error           { return nil }
func (noopStore) Close() error                          { return nil }
