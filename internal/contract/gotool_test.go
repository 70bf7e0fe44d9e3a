package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockGoRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("build diagnostics success", func(t *testing.T) {
		runner := new(MockGoRunner)
		runner.On("BuildDiagnostics", ctx, ".").Return([]byte("./main.go:10:6: x escapes to heap"), nil)

		out, err := runner.BuildDiagnostics(ctx, ".")
		assert.NoError(t, err)
		assert.Contains(t, string(out), "escapes to heap")
		runner.AssertExpectations(t)
	})

	t.Run("test diagnostics error", func(t *testing.T) {
		runner := new(MockGoRunner)
		runner.On("TestDiagnostics", ctx, "/missing").Return(nil, errors.New("directory does not exist"))

		out, err := runner.TestDiagnostics(ctx, "/missing")
		assert.Error(t, err)
		assert.Nil(t, out)
		runner.AssertExpectations(t)
	})
}

func TestLocalGoRunnerMissingDir(t *testing.T) {
	runner := NewLocalGoRunner()

	_, err := runner.BuildDiagnostics(context.Background(), "/definitely/not/a/real/dir")
	assert.Error(t, err)
}
