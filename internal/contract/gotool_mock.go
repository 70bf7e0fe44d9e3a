package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGoRunner is a mock implementation of the GoRunner interface for testing.
type MockGoRunner struct {
	mock.Mock
}

var _ GoRunner = &MockGoRunner{} // Compile-time check

// BuildDiagnostics implements the GoRunner interface.
func (m *MockGoRunner) BuildDiagnostics(ctx context.Context, dir string) ([]byte, error) {
	args := m.Called(ctx, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// TestDiagnostics implements the GoRunner interface.
func (m *MockGoRunner) TestDiagnostics(ctx context.Context, dir string) ([]byte, error) {
	args := m.Called(ctx, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
