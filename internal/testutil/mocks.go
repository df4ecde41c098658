package testutil

import (
	"context"
	"errors"
	"fmt"
	"petcare/internal/providers"
	"strings"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (e LogEntry) Message() string {
	return fmt.Sprintf(e.Format, e.Args...)
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Contains reports whether any entry at level contains substr.
func (m *MockLogger) Contains(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Message(), substr) {
			return true
		}
	}
	return false
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu                  sync.Mutex
	PersistenceFailures map[string]int
	Records             map[string]int
	Scans               map[string]int
	CacheHits           int
	CacheMisses         int
}

func (m *MockMetrics) IncRequestsTotal(_, _ string, _ int)                  {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (m *MockMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncPersistenceFailures(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PersistenceFailures == nil {
		m.PersistenceFailures = make(map[string]int)
	}
	m.PersistenceFailures[key]++
}

func (m *MockMetrics) SetRecordsTotal(store string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Records == nil {
		m.Records = make(map[string]int)
	}
	m.Records[store] = count
}

func (m *MockMetrics) IncScans(scanType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Scans == nil {
		m.Scans = make(map[string]int)
	}
	m.Scans[scanType]++
}

func (m *MockMetrics) Failures(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PersistenceFailures[key]
}

func (m *MockMetrics) ScanCount(scanType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Scans[scanType]
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu     sync.Mutex
	Data   map[string][]byte
	Hits   int
	Misses int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	if ok {
		m.Hits++
	} else {
		m.Misses++
	}
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// Counts returns the hits and misses seen so far.
func (m *MockCache) Counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Hits, m.Misses
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements persistence.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

var ErrInjected = errors.New("injected storage failure")

// MockStorage is an in-memory persistence.StorageInterface. FailWrites makes
// the next n writes fail; WriteFn, when set, replaces the write entirely.
type MockStorage struct {
	mu         sync.Mutex
	Data       map[string][]byte
	History    map[string][][]byte
	FailWrites int
	FailReads  bool
	WriteFn    func(key string, data []byte) error
	Writes     int
	Closed     bool
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		Data:    make(map[string][]byte),
		History: make(map[string][][]byte),
	}
}

func (m *MockStorage) Read(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return nil, false, ErrInjected
	}
	data, ok := m.Data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (m *MockStorage) Write(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	if m.WriteFn != nil {
		if err := m.WriteFn(key, data); err != nil {
			return err
		}
	}
	if m.FailWrites > 0 {
		m.FailWrites--
		return ErrInjected
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.Data[key] = stored
	m.History[key] = append(m.History[key], stored)
	return nil
}

func (m *MockStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Put stores a raw document as if it had been written earlier.
func (m *MockStorage) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = data
}

func (m *MockStorage) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Data[key]
	return data, ok
}

func (m *MockStorage) SetFailWrites(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailWrites = n
}

func (m *MockStorage) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Writes
}

func (m *MockStorage) Versions(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.History[key])
}

// FixedClock implements providers.Clock with a settable time.
type FixedClock struct {
	mu sync.Mutex
	T  time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{T: t}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.T
}

func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.T = t
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.T = c.T.Add(d)
}

// SequentialIDs implements providers.IDGenerator returning prefix-1, prefix-2, ...
type SequentialIDs struct {
	mu     sync.Mutex
	Prefix string
	n      int
}

func (s *SequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, s.n)
}
