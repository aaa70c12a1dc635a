package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a script runs past the engine timeout.
	ErrTimeout = errors.New("evaluation timed out")
	// ErrSuperseded is returned to a caller whose evaluation was overtaken
	// by a newer Evaluate call.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

// evalResult passes evaluation output through channels.
type evalResult struct {
	report *Report
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, returning ErrTimeout once
// timeout elapses and ErrSuperseded when gen is no longer current. A timed
// out goroutine may keep running; its result goes to a buffered channel
// nobody reads.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	timeout time.Duration,
	mu *sync.Mutex,
	currentGen *uint64,
) (*Report, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, ErrSuperseded
		}
		return res.report, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}
