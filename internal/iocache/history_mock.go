package iocache

import (
	"time"

	"github.com/covlens/covlens/internal/contract"
	"github.com/covlens/covlens/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, profilePath string) (int64, error) {
	args := m.Called(startTime, profilePath)
	return args.Get(0).(int64), args.Error(1)
}

// FinishRun implements the HistoryStore interface.
func (m *MockHistoryStore) FinishRun(runID int64, endTime time.Time, report *schema.CoverageReport) error {
	args := m.Called(runID, endTime, report)
	return args.Error(0)
}

// RecordFileCoverage implements the HistoryStore interface.
func (m *MockHistoryStore) RecordFileCoverage(runID int64, recordedAt time.Time, file schema.FileCoverageSummary) error {
	args := m.Called(runID, recordedAt, file)
	return args.Error(0)
}

// ListRuns implements the HistoryStore interface.
func (m *MockHistoryStore) ListRuns(limit int) ([]schema.RunRecord, error) {
	args := m.Called(limit)
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// ListFileCoverage implements the HistoryStore interface.
func (m *MockHistoryStore) ListFileCoverage(runID int64) ([]schema.FileCoverageRow, error) {
	args := m.Called(runID)
	rows, _ := args.Get(0).([]schema.FileCoverageRow)
	return rows, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
