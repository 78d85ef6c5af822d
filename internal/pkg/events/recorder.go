package events

import (
	"context"
	"sync"
)

// Recorder keeps published events in memory. Tests use it to assert what a service emitted.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

func (r *Recorder) Publish(_ context.Context, events ...Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, events...)
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Topics returns the topic of every recorded event in publish order.
func (r *Recorder) Topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Topic)
	}
	return out
}
