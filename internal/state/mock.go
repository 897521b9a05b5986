package state

import (
	"sort"
	"sync"
	"time"
)

// Mock is an in-memory test double for Manager. Saves are applied immediately.
type Mock struct {
	mu       sync.Mutex
	payloads map[string][]byte
	updated  map[string]time.Time
	loadErrs map[string]error
	saves    map[string]int
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{
		payloads: make(map[string][]byte),
		updated:  make(map[string]time.Time),
		loadErrs: make(map[string]error),
		saves:    make(map[string]int),
	}
}

func (m *Mock) LoadHistory(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.loadErrs[key]; err != nil {
		return nil, err
	}
	return cloneBytes(m.payloads[key]), nil
}

func (m *Mock) SaveHistory(key string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads[key] = cloneBytes(payload)
	m.updated[key] = time.Now()
	m.saves[key]++
}

func (m *Mock) Snapshots() ([]Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshots := make([]Snapshot, 0, len(m.payloads))
	for key, p := range m.payloads {
		snapshots = append(snapshots, Snapshot{Key: key, Size: len(p), UpdatedAt: m.updated[key]})
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Key < snapshots[j].Key })
	return snapshots, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetPayload(key string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads[key] = cloneBytes(payload)
}

func (m *Mock) SetLoadError(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErrs[key] = err
}

func (m *Mock) Payload(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneBytes(m.payloads[key])
}

func (m *Mock) SaveCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[key]
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
