// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpredir

import (
	"github.com/gogama/httpredir/request"
)

// A HandlerGroup holds, for each Event, the ordered list of handlers a
// Client calls when that event fires while it resolves a redirect
// chain. The zero value is an empty group ready to use.
//
// Finish installing handlers before the group is given to a Client. A
// group is read without locking on every hop, so it must not be
// modified while any execution is using it.
type HandlerGroup struct {
	chains [numEvents][]Handler
}

// PushBack appends h to the handlers called for evt. Handlers for the
// same event run in the order they were pushed.
//
// PushBack panics if h is nil or evt is not one of the events returned
// by Events.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("httpredir: nil handler")
	}
	if !evt.valid() {
		panic("httpredir: unknown event")
	}
	g.chains[evt] = append(g.chains[evt], h)
}

// Len returns the number of handlers installed for evt. It is zero for
// a nil group and for unknown events.
func (g *HandlerGroup) Len(evt Event) int {
	if g == nil || !evt.valid() {
		return 0
	}
	return len(g.chains[evt])
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	for _, h := range g.chains[evt] {
		h.Handle(evt, e)
	}
}

// A Handler observes one step of a redirect chain: the start or end of
// an execution, a hop being sent, a hop timing out, the final body
// being read, or a redirect about to be followed. The execution passed
// in reflects the chain's state at that step. A BeforeHop handler may
// modify Execution.Request before it is sent.
type Handler interface {
	Handle(Event, *request.Execution)
}

// HandlerFunc lets an ordinary function serve as a Handler.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
