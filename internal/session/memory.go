package session

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process memory. Values are stored encoded
// so a caller never shares a *Session with another request.
type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	ttl = ttlOrDefault(ttl)
	return &MemoryStore{
		cache: cache.New(ttl, ttl/2),
		ttl:   ttl,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return decodeRecord(id, v.(record))
}

// Save merges the changed fields into the stored record. A new or reset
// session, or one whose record expired, is written whole.
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rec record
	v, found := m.cache.Get(s.ID)
	if found && !s.replace {
		set, del, err := changes(s)
		if err != nil {
			return err
		}
		rec = maps.Clone(v.(record))
		maps.Copy(rec, set)
		for _, field := range del {
			delete(rec, field)
		}
	} else {
		var err error
		if rec, err = fullRecord(s); err != nil {
			return err
		}
	}

	m.cache.Set(s.ID, rec, m.ttl)
	s.markClean()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}
