// Package event routes named interaction events to named handlers.
package event

import (
	"context"
	"sync"
)

// Name identifies an interaction event.
type Name string

// Interaction events.
const (
	SearchClicked   Name = "search-button.click"
	KeyPressed      Name = "search-input.keypress"
	InputChanged    Name = "search-input.input"
	ModeChanged     Name = "mode-toggle.change"
	ExampleClicked  Name = "example-query.click"
	NoticeDismissed Name = "notice.dismiss"
)

// KeyEnter is the Key value of an Enter press.
const KeyEnter = "Enter"

// Event is one user interaction.
type Event struct {
	Name    Name
	Key     string // KeyPressed
	Value   string // InputChanged, ExampleClicked
	Checked bool   // ModeChanged: true selects vector mode
	ID      uint64 // NoticeDismissed
}

// Handler reacts to an event.
type Handler func(ctx context.Context, e Event)

type binding struct {
	name    string
	handler Handler
}

// Registry holds handlers per event, in registration order.
type Registry struct {
	mu       sync.RWMutex
	bindings map[Name][]binding
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[Name][]binding)}
}

// On registers h under handlerName for the event. Registering the same
// handlerName twice replaces the earlier handler in place.
func (r *Registry) On(name Name, handlerName string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.bindings[name]
	for i := range list {
		if list[i].name == handlerName {
			list[i].handler = h
			return
		}
	}
	r.bindings[name] = append(list, binding{name: handlerName, handler: h})
}

// Off removes a named handler. Reports whether it was registered.
func (r *Registry) Off(name Name, handlerName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.bindings[name]
	for i := range list {
		if list[i].name == handlerName {
			r.bindings[name] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Handlers lists handler names bound to the event.
func (r *Registry) Handlers(name Name) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.bindings[name]
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.name)
	}
	return out
}

// Dispatch runs the handlers bound to e.Name and returns how many ran.
// Handlers run outside the lock, so they may register or dispatch.
func (r *Registry) Dispatch(ctx context.Context, e Event) int {
	r.mu.RLock()
	list := make([]binding, len(r.bindings[e.Name]))
	copy(list, r.bindings[e.Name])
	r.mu.RUnlock()

	for _, b := range list {
		b.handler(ctx, e)
	}
	return len(list)
}
