package testutil

import (
	"fmt"
	"scorekeeper/internal/providers"
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

// Has reports whether an entry of the level contains substr.
func (m *MockLogger) Has(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Message(), substr) {
			return true
		}
	}
	return false
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	Requests        int
	BackupDurations int
	Backups         map[string]int
	Restores        map[string]int
	GuestLinks      map[string]int
	Snapshots       int
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(endpoint string, duration time.Duration) {}

func (m *MockMetrics) ObserveBackupDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BackupDurations++
}

func (m *MockMetrics) IncBackupsTotal(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Backups == nil {
		m.Backups = map[string]int{}
	}
	m.Backups[result]++
}

func (m *MockMetrics) IncRestoresTotal(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Restores == nil {
		m.Restores = map[string]int{}
	}
	m.Restores[result]++
}

func (m *MockMetrics) SetSnapshotsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshots = count
}

func (m *MockMetrics) IncGuestLinks(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GuestLinks == nil {
		m.GuestLinks = map[string]int{}
	}
	m.GuestLinks[outcome]++
}
