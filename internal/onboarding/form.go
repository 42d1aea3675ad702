package onboarding

import "sync"

// form owns the state of one screen instance and admits a single submission
// at a time.
type form struct {
	mu    sync.Mutex
	state State
}

// begin moves the form into Validating. It returns false when another
// submission is still in flight.
func (f *form) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.inFlight() {
		return false
	}
	f.state = StateValidating
	return true
}

func (f *form) set(state State) {
	f.mu.Lock()
	f.state = state
	f.mu.Unlock()
}

func (f *form) current() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}
