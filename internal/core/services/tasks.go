package services

import (
	"sync"

	"github.com/custodia-labs/sitesage/internal/logger"
)

// TaskRunner dispatches fire-and-forget background work. It exists so
// background jobs are explicit goroutines owned by the service process
// rather than request-scoped ones, and so shutdown can wait for them.
type TaskRunner struct {
	wg sync.WaitGroup
}

// NewTaskRunner creates a task runner.
func NewTaskRunner() *TaskRunner {
	return &TaskRunner{}
}

// Go runs fn on its own goroutine. Panics are recovered and logged so a
// failing job can never bring the process down.
func (r *TaskRunner) Go(name string, fn func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				logger.Warn("task %s panicked: %v", name, p)
			}
		}()
		fn()
	}()
}

// Wait blocks until all dispatched tasks have finished.
func (r *TaskRunner) Wait() {
	r.wg.Wait()
}
