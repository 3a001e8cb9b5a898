package ratelimit

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Store persists the request timestamps of each key.
type Store interface {
	Load(ctx context.Context, key string) ([]time.Time, error)
	// Save replaces key's timestamps. Implementations may drop the key once
	// ttl has elapsed.
	Save(ctx context.Context, key string, stamps []time.Time, ttl time.Duration) error
}

const keyPrefix = "ratelimit:"

func encodeStamps(stamps []time.Time) ([]byte, error) {
	nanos := make([]int64, len(stamps))
	for i, t := range stamps {
		nanos[i] = t.UnixNano()
	}
	return json.Marshal(nanos)
}

func decodeStamps(raw []byte) ([]time.Time, error) {
	var nanos []int64
	if err := json.Unmarshal(raw, &nanos); err != nil {
		return nil, err
	}
	stamps := make([]time.Time, len(nanos))
	for i, n := range nanos {
		stamps[i] = time.Unix(0, n)
	}
	return stamps, nil
}

// MemoryStore keeps timestamps in process memory. Every Load sweeps keys
// whose ttl has elapsed.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	stamps  []time.Time
	expires time.Time
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
		}
	}
	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return append([]time.Time(nil), e.stamps...), nil
}

func (s *MemoryStore) Save(_ context.Context, key string, stamps []time.Time, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(stamps) == 0 {
		delete(s.entries, key)
		return nil
	}
	s.entries[key] = memoryEntry{
		stamps:  append([]time.Time(nil), stamps...),
		expires: s.now().Add(ttl),
	}
	return nil
}

// Len returns the number of live keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
