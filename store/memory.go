package store

import (
	"fmt"
	"sync"
)

// MemoryStore keeps entries in process memory in insertion order. A non-zero
// quota caps the summed length of keys and values, the way browsers cap
// web storage.
type MemoryStore struct {
	data  map[string]string
	order []string
	used  int
	quota int
	mu    sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithQuota(0)
}

// NewMemoryStoreWithQuota creates a store that rejects writes growing it past
// quota bytes. A quota of 0 means unlimited.
func NewMemoryStoreWithQuota(quota int) *MemoryStore {
	return &MemoryStore{
		data:  make(map[string]string),
		quota: quota,
	}
}

func (ms *MemoryStore) Get(key string) (string, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	value, exists := ms.data[key]
	return value, exists, nil
}

func (ms *MemoryStore) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	old, exists := ms.data[key]
	used := ms.used + len(value)
	if exists {
		used -= len(old)
	} else {
		used += len(key)
	}
	if ms.quota > 0 && used > ms.quota {
		return fmt.Errorf("set %q: %w", key, ErrQuotaExceeded)
	}

	if !exists {
		ms.order = append(ms.order, key)
	}
	ms.data[key] = value
	ms.used = used
	return nil
}

func (ms *MemoryStore) Delete(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	value, exists := ms.data[key]
	if !exists {
		return nil
	}

	delete(ms.data, key)
	ms.used -= len(key) + len(value)
	for i, k := range ms.order {
		if k == key {
			ms.order = append(ms.order[:i], ms.order[i+1:]...)
			break
		}
	}
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.data = make(map[string]string)
	ms.order = nil
	ms.used = 0
	return nil
}

func (ms *MemoryStore) Key(index int) (string, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if index < 0 || index >= len(ms.order) {
		return "", false, nil
	}
	return ms.order[index], true, nil
}

func (ms *MemoryStore) Keys() ([]string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	keys := make([]string, len(ms.order))
	copy(keys, ms.order)
	return keys, nil
}

func (ms *MemoryStore) Len() (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	return len(ms.order), nil
}
