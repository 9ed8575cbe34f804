// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that starts and
// stops multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start must not block: implementations spawn their goroutines and return.
// Stop blocks until the worker's goroutines have finished.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
