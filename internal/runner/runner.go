// Package runner executes external commands for adapters that shell out
// to system tools.
package runner

import (
	"context"
	"os/exec"

	"github.com/custodia-labs/sitesage/internal/core/ports/driven"
)

// Ensure ExecRunner implements the interface.
var _ driven.CommandRunner = (*ExecRunner)(nil)

// ExecRunner runs commands through os/exec, honouring context
// cancellation.
type ExecRunner struct{}

// New creates an ExecRunner.
func New() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and returns its combined output.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
