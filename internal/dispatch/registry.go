// Package dispatch runs every check registered for a git hook event.
package dispatch

import (
	"errors"
	"sort"
	"strings"

	"github.com/Veraticus/githooks/internal/checks"
)

// ErrUnknownCheck is returned when an event names a check that is not built in.
var ErrUnknownCheck = errors.New("unknown check")

// ScriptPrefix marks registry entries that run a script from the event folder.
const ScriptPrefix = "script:"

// Registry maps git events to ordered built-in check names.
type Registry struct {
	events map[string][]string
	checks map[string]checks.Checker
}

// NewRegistry creates a registry from an event -> check names table.
func NewRegistry(events map[string][]string, builtins map[string]checks.Checker) *Registry {
	r := &Registry{
		events: make(map[string][]string, len(events)),
		checks: builtins,
	}
	for event, ids := range events {
		r.events[event] = append([]string(nil), ids...)
	}
	if r.checks == nil {
		r.checks = map[string]checks.Checker{}
	}
	return r
}

// Events returns the events with configured checks, sorted.
func (r *Registry) Events() []string {
	events := make([]string, 0, len(r.events))
	for e := range r.events {
		events = append(events, e)
	}
	sort.Strings(events)
	return events
}

// Checks returns the configured check names for event, in order.
func (r *Registry) Checks(event string) []string {
	return r.events[event]
}

// Lookup returns the built-in checker called name.
func (r *Registry) Lookup(name string) (checks.Checker, bool) {
	c, ok := r.checks[strings.TrimSpace(name)]
	return c, ok
}

// Builtins returns the names of the built-in checks, sorted.
func (r *Registry) Builtins() []string {
	return checks.Names(r.checks)
}
