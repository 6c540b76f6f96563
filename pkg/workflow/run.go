package workflow

import (
	"sync"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
)

// Run is one pass through the state machine. A new submission always
// creates a new Run.
type Run struct {
	ID string

	task *Deferred[Result]
	done chan struct{}

	mu      sync.Mutex
	state   State
	history []State
	request metrics.ReportRequest
	result  Result
}

func newRun(id string, req metrics.ReportRequest) *Run {
	return &Run{
		ID:      id,
		done:    make(chan struct{}),
		state:   StateIdle,
		history: []State{StateIdle},
		request: req,
	}
}

// State returns the current state.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// History returns every state the run has been in, oldest first.
func (r *Run) History() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.history...)
}

// Request returns the pending request. It is cleared once the run completes.
func (r *Run) Request() metrics.ReportRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.request
}

// Done is closed when the run reaches a terminal state.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run is terminal and returns its result.
func (r *Run) Wait() Result {
	<-r.done
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// Cancel stops a run that has not reached its side effect yet.
func (r *Run) Cancel() {
	if r.task != nil {
		r.task.Cancel()
	}
}

func (r *Run) transition(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
	r.history = append(r.history, s)
}

func (r *Run) finish(res Result) {
	r.mu.Lock()
	r.state = res.State
	r.history = append(r.history, res.State)
	if res.State == StateCompleted {
		r.request = metrics.ReportRequest{}
	}
	r.result = res
	r.mu.Unlock()
	close(r.done)
}
