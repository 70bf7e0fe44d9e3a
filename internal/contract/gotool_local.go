package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// LocalGoRunner implements the GoRunner interface by executing the
// local 'go' binary installed on the machine.
type LocalGoRunner struct{}

var _ GoRunner = &LocalGoRunner{} // Compile-time check

// NewLocalGoRunner creates a new instance of the local toolchain runner.
func NewLocalGoRunner() *LocalGoRunner {
	return &LocalGoRunner{}
}

// run executes a go command in dir and returns its combined stdout/stderr.
// The -gcflags=-m diagnostics land on stderr and a non-zero exit does not
// invalidate them, so exit failures are swallowed as long as the binary ran.
func (r *LocalGoRunner) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("directory does not exist: %s", dir)
	}

	cmd := exec.CommandContext(ctx, "go", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, nil
	} else if err != nil {
		return nil, fmt.Errorf("go command failed: %w. Ensure Go is installed and available on your PATH", err)
	}
	return out, nil
}

// BuildDiagnostics implements the GoRunner interface.
func (r *LocalGoRunner) BuildDiagnostics(ctx context.Context, dir string) ([]byte, error) {
	return r.run(ctx, dir, "build", "-gcflags=-m")
}

// TestDiagnostics implements the GoRunner interface.
// It compiles the test binary first and then runs the tests, since the two
// passes report different instantiation sites.
func (r *LocalGoRunner) TestDiagnostics(ctx context.Context, dir string) ([]byte, error) {
	compileOut, err := r.run(ctx, dir, "test", "-c", "-gcflags=-m")
	if err != nil {
		return nil, err
	}
	testOut, err := r.run(ctx, dir, "test", "-gcflags=-m")
	if err != nil {
		return nil, err
	}
	return bytes.Join([][]byte{compileOut, testOut}, []byte("\n")), nil
}
