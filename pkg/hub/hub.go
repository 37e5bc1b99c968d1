// Package hub owns the session state of the calculator and dispatches the
// single selectedLevelChanged signal to every view except the one that
// raised it.
//
// A Hub is not safe for concurrent use. Every dispatch runs to completion,
// synchronously, in subscription order.
package hub

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/erlc/pkg/registry"
)

// ErrOutOfRange is returned when a write would set bits unknown to the
// active version.
var ErrOutOfRange = errors.New("❌ level has bits outside the active version")

// State is the session-scoped calculator state.
type State struct {
	Version       string
	SelectedLevel registry.Level
	MaxLevel      registry.Level
	EAllLevel     registry.Level
}

// Subscriber is a view that re-renders on selectedLevelChanged.
type Subscriber interface {
	Origin() Origin
	Render()
}

// Event describes one dispatch after it completed.
type Event struct {
	Origin   Origin
	State    State
	Rendered []Origin
}

// Hub is the synchronization point between the views.
type Hub struct {
	state       State
	subscribers []Subscriber
	watchers    []func(Event)
	logger      hclog.Logger
}

// New creates an empty hub. A nil logger discards output.
func New(logger hclog.Logger) *Hub {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Hub{logger: logger.Named("hub")}
}

// State returns a copy of the current session state.
func (h *Hub) State() State {
	return h.state
}

// Selected is the currently selected level.
func (h *Hub) Selected() registry.Level {
	return h.state.SelectedLevel
}

// Subscribe registers a view. Views render in subscription order.
func (h *Hub) Subscribe(s Subscriber) {
	h.subscribers = append(h.subscribers, s)
}

// Watch registers a callback invoked after every dispatch.
func (h *Hub) Watch(fn func(Event)) {
	h.watchers = append(h.watchers, fn)
}

// Reset switches the session to a new version. The selection is recomputed
// from scratch as the version's maximum level, never carried over.
func (h *Hub) Reset(version string, max, eAll registry.Level) {
	h.state = State{
		Version:       version,
		SelectedLevel: max,
		MaxLevel:      max,
		EAllLevel:     eAll,
	}
	h.logger.Debug("version reset", "version", version, "max", max, "e_all", eAll)
}

// SetSelected writes the selected level on behalf of origin. Levels with
// bits outside the active version are refused and leave state untouched.
func (h *Hub) SetSelected(origin Origin, level registry.Level) error {
	if !level.SubmaskOf(h.state.MaxLevel) {
		h.logger.Warn("refusing out of range level", "origin", origin, "level", level, "max", h.state.MaxLevel)
		return ErrOutOfRange
	}
	h.state.SelectedLevel = level
	h.logger.Trace("selected level written", "origin", origin, "level", level)
	return nil
}

// Publish raises selectedLevelChanged. Every subscriber whose origin differs
// from origin renders, in subscription order.
func (h *Hub) Publish(origin Origin) Event {
	ev := Event{Origin: origin}
	for _, s := range h.subscribers {
		if s.Origin() == origin {
			continue
		}
		s.Render()
		ev.Rendered = append(ev.Rendered, s.Origin())
	}
	ev.State = h.state

	h.logger.Debug("selected level changed",
		"origin", origin,
		"level", h.state.SelectedLevel,
		"rendered", len(ev.Rendered),
	)

	for _, fn := range h.watchers {
		fn(ev)
	}
	return ev
}
