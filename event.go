// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpredir

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to observe or extend the
// redirect chain.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// plan execution starts.
	//
	// When Client fires BeforeExecutionStart, only the execution's ID
	// and Plan fields are set.
	BeforeExecutionStart Event = iota
	// BeforeHop identifies the event that occurs before each wire
	// request in the chain is sent: once for the initial request and
	// once per redirect followed.
	//
	// When Client fires BeforeHop, the execution's Request field is set
	// to the HTTP request that WILL BE sent after all BeforeHop
	// handlers have finished. Handlers may modify the request, but
	// should clone its URL and Header before changing them since both
	// are shared with the execution's Current plan.
	BeforeHop
	// AfterHopTimeout identifies the event that occurs after a hop
	// failed because of a timeout, whether waiting for the response or
	// reading the final response body.
	//
	// When Client fires AfterHopTimeout, the execution's Err field is
	// set and its Timeout method returns true.
	AfterHopTimeout
	// BeforeReadBody identifies the event that occurs after the final
	// response of the chain has been received but before its body is
	// read and buffered.
	//
	// BeforeReadBody does not fire for redirect responses which are
	// followed, since their bodies are discarded, nor for responses
	// which end the chain in a redirect policy error.
	BeforeReadBody
	// BeforeRedirect identifies the event that occurs after the
	// redirect policy has decided to follow a redirect, and before the
	// next hop starts.
	//
	// When Client fires BeforeRedirect, the execution's Location field
	// holds the resolved redirect target, Via includes the URL of the
	// hop just completed, and Current still describes that hop.
	BeforeRedirect
	// AfterHop identifies the event that occurs after a hop concludes,
	// regardless of whether it ended in a redirect, a final response or
	// an error.
	AfterHop
	// AfterExecutionEnd identifies the event that occurs after the plan
	// execution ends.
	//
	// When Client fires AfterExecutionEnd, the execution is in the same
	// state as after the last AfterHop event except that its End field
	// is set.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeHop",
	"AfterHopTimeout",
	"BeforeReadBody",
	"BeforeRedirect",
	"AfterHop",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in an
// HTTP request plan execution by Client, in the order in which they
// would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeHop,
		AfterHopTimeout,
		BeforeReadBody,
		BeforeRedirect,
		AfterHop,
		AfterExecutionEnd,
	}
}

func (evt Event) valid() bool {
	return evt >= 0 && evt < eventSentinel
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
