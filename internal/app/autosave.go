package app

import "time"

// Autosaver periodically flushes modified settings to disk so that a
// session change (language toggle, new selection rectangle) survives
// even an unclean exit.
type Autosaver struct {
	state    *State
	interval time.Duration
	stopCh   chan struct{}
}

// NewAutosaver creates an autosaver for the given state.
func NewAutosaver(state *State, interval time.Duration) *Autosaver {
	return &Autosaver{
		state:    state,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic save loop in a background goroutine.
func (a *Autosaver) Start() {
	go func() {
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.state.SaveIfModified()
			case <-a.stopCh:
				return
			}
		}
	}()
}

// Stop ends the loop and performs a final flush.
func (a *Autosaver) Stop() {
	close(a.stopCh)
	a.state.SaveIfModified()
}
