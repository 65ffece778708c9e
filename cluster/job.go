package cluster

import (
	"context"

	"github.com/viant/semsearch/store"
)

// Job is a handle to a clustering run dispatched off the caller's
// goroutine. Clustering is CPU-bound; serving paths start a Job and poll or
// wait instead of blocking a latency-sensitive request on it.
type Job struct {
	done       chan struct{}
	assignment *Assignment
	err        error
}

// Go runs Analyze on a background goroutine and returns immediately. The
// context cancels the run between its phases.
func (a *Analyzer) Go(ctx context.Context, s *store.Store, k int) *Job {
	j := &Job{done: make(chan struct{})}
	go func() {
		defer close(j.done)
		j.assignment, j.err = a.Analyze(ctx, s, k)
	}()
	return j
}

// GoOptimalK runs the OptimalK sweep on a background goroutine. The context
// aborts the sweep between k trials.
func (a *Analyzer) GoOptimalK(ctx context.Context, s *store.Store, maxK int) *SweepJob {
	j := &SweepJob{done: make(chan struct{})}
	go func() {
		defer close(j.done)
		j.result, j.err = a.OptimalK(ctx, s, maxK)
	}()
	return j
}

// Done is closed once the run finishes, successfully or not.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the run finishes or the context is cancelled.
func (j *Job) Wait(ctx context.Context) (*Assignment, error) {
	select {
	case <-j.done:
		return j.assignment, j.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the outcome after Done is closed; before that it reports
// the run as still in flight.
func (j *Job) Result() (*Assignment, bool, error) {
	select {
	case <-j.done:
		return j.assignment, true, j.err
	default:
		return nil, false, nil
	}
}

// SweepJob is the background handle for an OptimalK sweep.
type SweepJob struct {
	done   chan struct{}
	result *OptimalKResult
	err    error
}

// Done is closed once the sweep finishes, successfully or not.
func (j *SweepJob) Done() <-chan struct{} { return j.done }

// Wait blocks until the sweep finishes or the context is cancelled.
func (j *SweepJob) Wait(ctx context.Context) (*OptimalKResult, error) {
	select {
	case <-j.done:
		return j.result, j.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
