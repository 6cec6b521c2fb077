package workspace

import (
	"sync"
	"time"
)

// Registry maps workspace IDs, stored in the browser session, to workspaces.
type Registry struct {
	mu     sync.Mutex
	states map[string]*State
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:     sync.Mutex{},
		states: make(map[string]*State),
	}
}

// Get returns the workspace with the given ID, creating it if necessary.
func (r *Registry) Get(id string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[id]
	if !ok {
		state = New(id)
		r.states[id] = state
	}
	return state
}

// Sweep removes workspaces that have not been used for idle and returns how many were removed. Workspaces with
// an analysis in progress are kept.
func (r *Registry) Sweep(idle time.Duration) int {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, state := range r.states {
		since, analyzing := state.idleSince(now)
		if since >= idle && !analyzing {
			delete(r.states, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}
