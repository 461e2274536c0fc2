package recorder

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
)

type memoryKey struct{ key, field string }

// MemoryStore is a Recorder that keeps observations in a map.
type MemoryStore struct {
	mu           sync.Mutex
	observations map[memoryKey]Observation
}

var _ Recorder = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{observations: make(map[memoryKey]Observation)}
}

func (m *MemoryStore) Record(_ context.Context, o Observation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.Raw = slices.Clone(o.Raw)
	m.observations[memoryKey{o.Key, o.Field}] = o
	return nil
}

func (m *MemoryStore) All(_ context.Context, prefix string) ([]Observation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]Observation, 0)
	for k, o := range m.observations {
		if strings.HasPrefix(k.key, prefix) {
			o.Raw = slices.Clone(o.Raw)
			entries = append(entries, o)
		}
	}
	slices.SortFunc(entries, compareObservations)
	return entries, nil
}

func (m *MemoryStore) Close() error { return nil }

func compareObservations(a, b Observation) int {
	return cmp.Or(strings.Compare(a.Key, b.Key), strings.Compare(a.Field, b.Field))
}
