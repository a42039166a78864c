package storage

import (
	"sync"
	"time"
)

// memoryStore keeps revisions in process memory; they are lost on restart.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	janitor *janitor
	once    sync.Once
}

func newMemoryStore(opts Options, now func() time.Time) *memoryStore {
	m := &memoryStore{entries: make(map[string]entry), ttl: opts.TTL, now: now}
	m.janitor = startJanitor(opts.CleanupInterval, m.sweep)
	return m
}

func (m *memoryStore) Revision(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok || !e.live(m.now()) {
		return "", false, nil
	}
	return e.rev, true, nil
}

func (m *memoryStore) Record(key, rev string) error {
	m.mu.Lock()
	m.entries[key] = entry{rev: rev, expires: m.now().Add(m.ttl).Unix()}
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) sweep() {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.entries {
		if !e.live(now) {
			delete(m.entries, k)
		}
	}
}

func (m *memoryStore) Close() error {
	m.once.Do(m.janitor.stop)
	return nil
}
