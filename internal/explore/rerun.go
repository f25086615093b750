// file: internal/explore/rerun.go
// version: 1.0.0
// guid: 9d5a3c7e-1b48-4f02-a6e9-3c7d5b8f2e14

package explore

import "sync"

// Rerunner coalesces repeated refresh requests into at most one queued
// run: triggers arriving while a run is in flight collapse into a single
// follow-up pass, so a burst of filter changes costs two runs at most.
type Rerunner struct {
	mu      sync.Mutex
	run     func()
	running bool
	queued  bool
}

// NewRerunner wraps run. The function is always invoked from Trigger's
// goroutine, never concurrently with itself.
func NewRerunner(run func()) *Rerunner {
	return &Rerunner{run: run}
}

// Trigger requests a run. If one is already in flight the request is
// queued; further triggers while queued are dropped.
func (r *Rerunner) Trigger() {
	r.mu.Lock()
	if r.running {
		r.queued = true
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	for {
		r.run()

		r.mu.Lock()
		if !r.queued {
			r.running = false
			r.mu.Unlock()
			return
		}
		r.queued = false
		r.mu.Unlock()
	}
}
