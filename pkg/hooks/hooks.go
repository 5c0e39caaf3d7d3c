package hooks

import (
	"net/http"
	"sync"
)

// StatusFilter transforms the status line about to be sent.
// It returns header unchanged, or a replacement status line.
type StatusFilter interface {
	FilterStatus(r *http.Request, header string, code int, description, protocol string) string
}

// StatusFilterFunc adapts an ordinary function to StatusFilter.
type StatusFilterFunc func(r *http.Request, header string, code int, description, protocol string) string

// FilterStatus calls f.
func (f StatusFilterFunc) FilterStatus(r *http.Request, header string, code int, description, protocol string) string {
	return f(r, header, code, description, protocol)
}

// FinalizeAction runs right before the status of a response is written.
// code is the status the handler asked for; header is the outgoing header
// set and may be modified.
type FinalizeAction interface {
	OnFinalize(r *http.Request, code int, header http.Header)
}

// FinalizeActionFunc adapts an ordinary function to FinalizeAction.
type FinalizeActionFunc func(r *http.Request, code int, header http.Header)

// OnFinalize calls f.
func (f FinalizeActionFunc) OnFinalize(r *http.Request, code int, header http.Header) {
	f(r, code, header)
}

// Registry holds the filters and actions registered for a server.
// Registration is expected at startup, but is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	filters []StatusFilter
	actions []FinalizeAction
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddStatusFilter registers f. Filters run in registration order.
func (reg *Registry) AddStatusFilter(f StatusFilter) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.filters = append(reg.filters, f)
}

// AddFinalizeAction registers a. Actions run in registration order.
func (reg *Registry) AddFinalizeAction(a FinalizeAction) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.actions = append(reg.actions, a)
}

// FilterStatus passes the status line through every registered filter,
// each filter receiving the output of the previous one.
func (reg *Registry) FilterStatus(r *http.Request, header string, code int, description, protocol string) string {
	reg.mu.RLock()
	filters := reg.filters
	reg.mu.RUnlock()
	for _, f := range filters {
		header = f.FilterStatus(r, header, code, description, protocol)
	}
	return header
}

// Finalize runs every registered action.
func (reg *Registry) Finalize(r *http.Request, code int, header http.Header) {
	reg.mu.RLock()
	actions := reg.actions
	reg.mu.RUnlock()
	for _, a := range actions {
		a.OnFinalize(r, code, header)
	}
}

// Len returns the number of registered filters and actions.
func (reg *Registry) Len() (filters, actions int) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.filters), len(reg.actions)
}
