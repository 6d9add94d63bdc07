package loader

import (
	"fmt"

	"github.com/modcache/smc/internal/engine"
)

// runIsolated invokes fn on a dedicated goroutine and converts a
// panic into an engine.CrashError, so a fault inside the build
// attempt surfaces as an ordinary failure instead of taking down the
// process. The exec-based engine adds a second boundary of its own:
// the frontend subprocess.
func runIsolated(fn func() error) error {
	errCh := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errCh <- &engine.CrashError{Reason: fmt.Sprint(r)}
			}
		}()

		errCh <- fn()
	}()

	return <-errCh
}
