// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/httpredir/request"
)

// A Policy defines a timeout policy which may be plugged into the
// redirecting HTTP client (httpredir.Client) to direct how to set the
// timeout of the initial request and of every redirect hop after it.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the next hop within the
	// execution.
	//
	// Parameter e contains the current state of the execution: e.Hop
	// is the zero-based number of the hop about to be sent and e.Via
	// holds the URLs already visited.
	Timeout(e *request.Execution) time.Duration
}

// Infinite is a built-in timeout policy which never times out. Hops
// are still bounded by the plan's context and by any timeout configured
// on the underlying HTTPDoer.
var Infinite Policy = Fixed(1<<63 - 1)

// DefaultPolicy is the default timeout policy. It is Infinite, leaving
// timeouts to the HTTPDoer, so that a client configured with a plain
// http.Client behaves exactly like that http.Client.
var DefaultPolicy Policy = Infinite

// Fixed constructs a timeout policy that uses the same value to set
// every hop timeout.
func Fixed(d time.Duration) Policy {
	if d <= 0 {
		panic("httpredir/timeout: timeout must be positive")
	}
	return fixed(d)
}

type fixed time.Duration

func (f fixed) Timeout(_ *request.Execution) time.Duration {
	return time.Duration(f)
}

// Budget constructs a timeout policy that shares a total time budget
// across the whole redirect chain. Each hop gets whatever remains of
// total since the execution started, but never more than perHop. Once
// the budget is spent the next hop gets a zero timeout and fails
// immediately with a timeout error.
//
// Use Budget when a long chain of individually fast hops must still
// finish within a deadline, for example:
//
//	p := timeout.Budget(10*time.Second, 3*time.Second)
func Budget(total, perHop time.Duration) Policy {
	if total <= 0 || perHop <= 0 {
		panic("httpredir/timeout: budget must be positive")
	}
	return budget{total: total, perHop: perHop}
}

type budget struct {
	total  time.Duration
	perHop time.Duration
}

func (b budget) Timeout(e *request.Execution) time.Duration {
	remaining := b.total - e.Duration()
	if remaining < 0 {
		return 0
	}
	if remaining > b.perHop {
		return b.perHop
	}
	return remaining
}
