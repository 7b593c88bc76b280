package stats

import (
	"context"
	"sync"
)

// Result bundles both reports for one query.
type Result struct {
	Query    Query         `json:"query"`
	Revenue  RevenueReport `json:"revenue"`
	Flavours FlavourReport `json:"flavours"`
}

// Recomputer runs report recomputation off the caller's goroutine with
// last-request-wins semantics: submitting a new query cancels the one in
// flight, and a superseded run discards its result instead of
// publishing a stale one.
type Recomputer struct {
	service *Service

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
	latest *Result
	done   chan struct{}
}

func NewRecomputer(service *Service) *Recomputer {
	return &Recomputer{service: service}
}

// Submit schedules a recompute for q, superseding any in-flight run.
func (r *Recomputer) Submit(q Query) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.seq++
	seq := r.seq
	done := make(chan struct{})
	r.done = done
	r.mu.Unlock()

	go func() {
		defer close(done)

		result := Result{
			Query:    q,
			Revenue:  r.service.Revenue(q),
			Flavours: r.service.FlavourCounts(q),
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		// A newer submission superseded this run; drop the result.
		if ctx.Err() != nil || seq != r.seq {
			return
		}
		r.latest = &result
	}()
}

// Latest returns the most recently completed result, if any.
func (r *Recomputer) Latest() (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.latest == nil {
		return Result{}, false
	}
	return *r.latest, true
}

// Wait blocks until the newest submitted run has finished or been
// superseded. Mostly useful in tests and shutdown paths.
func (r *Recomputer) Wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()

	if done != nil {
		<-done
	}
}
