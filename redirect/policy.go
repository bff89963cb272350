// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package redirect

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/purell"
)

// An Action is the outcome of a redirect policy decision.
type Action int

const (
	// Follow indicates the client should send the next request to the
	// candidate URL.
	Follow Action = iota
	// Stop indicates the client should not follow the redirect, and
	// should instead return the redirect response itself as the final
	// response. Stop is not an error.
	Stop
	// LoopDetected indicates the candidate URL was already visited in
	// the chain. The client fails the request with a redirect loop
	// error.
	LoopDetected
	// TooManyRedirects indicates the chain is too long. The client
	// fails the request with a too many redirects error.
	TooManyRedirects
)

var actionNames = []string{
	"Follow",
	"Stop",
	"LoopDetected",
	"TooManyRedirects",
}

// String returns the name of the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// A Policy decides what to do with a redirect.
//
// Parameter next is the candidate URL, already resolved against the URL
// of the response carrying the Location header. Parameter via contains
// every URL visited so far in the chain, oldest first; its last element
// is the URL whose response is being redirected. Implementations must
// not modify either argument.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	Decide(next *url.URL, via []*url.URL) Action
}

// The PolicyFunc type is an adapter to allow the use of ordinary
// functions as redirect policies.
type PolicyFunc func(next *url.URL, via []*url.URL) Action

// Decide returns f(next, via).
func (f PolicyFunc) Decide(next *url.URL, via []*url.URL) Action {
	return f(next, via)
}

// DefaultMax is the history length at which Default reports
// TooManyRedirects.
const DefaultMax = 10

// Default is the policy used when no other policy is configured. It
// is Limit(DefaultMax).
var Default Policy = Limit(DefaultMax)

// None is a policy that never follows a redirect.
var None Policy = none{}

type none struct{}

func (_ none) Decide(_ *url.URL, _ []*url.URL) Action {
	return Stop
}

func (_ none) String() string {
	return "None"
}

// Limit constructs a policy which detects redirect loops and limits
// the length of the chain.
//
// The returned policy reports TooManyRedirects once the history holds
// max URLs, whether or not the candidate is new. Otherwise it reports
// LoopDetected if the candidate already appears in the history, and
// Follow if it does not. URLs are compared after safe normalization
// (case of scheme and host, default ports, percent-encoding), so
// "HTTP://Example.com:80/a" and "http://example.com/a" are the same
// visit.
//
// Because the history includes the URL being redirected, Limit(n)
// follows at most n-1 redirects. Limit(0) never follows.
func Limit(max int) Policy {
	if max < 0 {
		panic("httpredir/redirect: negative max")
	}
	return limit(max)
}

type limit int

func (l limit) Decide(next *url.URL, via []*url.URL) Action {
	if len(via) >= int(l) {
		return TooManyRedirects
	}
	if Visited(next, via) {
		return LoopDetected
	}
	return Follow
}

func (l limit) String() string {
	return fmt.Sprintf("Limit(%d)", int(l))
}

// Custom constructs a policy which delegates every decision to f.
//
// The engine imposes no loop or limit detection on a custom policy;
// f is expected to return LoopDetected or TooManyRedirects itself when
// appropriate, or Custom can be composed with Limit using Chain.
func Custom(f func(next *url.URL, via []*url.URL) Action) Policy {
	if f == nil {
		panic("httpredir/redirect: nil policy func")
	}
	return PolicyFunc(f)
}

// Chain composes policies into a policy which consults each in turn
// and returns the first action other than Follow. If every policy
// returns Follow, or there are no policies, the result is Follow.
func Chain(ps ...Policy) Policy {
	ps2 := make([]Policy, len(ps))
	for i, p := range ps {
		if p == nil {
			panic("httpredir/redirect: nil policy")
		}
		ps2[i] = p
	}
	return PolicyFunc(func(next *url.URL, via []*url.URL) Action {
		for _, p := range ps2 {
			if a := p.Decide(next, via); a != Follow {
				return a
			}
		}
		return Follow
	})
}

// Decide asks p for a decision, using Default if p is nil.
func Decide(p Policy, next *url.URL, via []*url.URL) Action {
	if p == nil {
		p = Default
	}
	return p.Decide(next, via)
}

// Visited reports whether u appears in via, comparing normalized
// forms.
func Visited(u *url.URL, via []*url.URL) bool {
	n := normalize(u)
	for _, v := range via {
		if v != nil && normalize(v) == n {
			return true
		}
	}
	return false
}

func normalize(u *url.URL) string {
	// NormalizeURL rewrites its argument in place.
	c := *u
	return purell.NormalizeURL(&c, purell.FlagsSafe)
}
