// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpredir

import (
	"net/http"

	"github.com/gogama/httpredir/request"
)

// An HTTPDoer implements a Do method in the same manner as the Go
// standard library http.Client from the net/http package.
//
// Client relies on its HTTPDoer to send exactly one wire request per
// call to Do. An HTTPDoer which follows redirects itself hides them
// from the client's redirect policy.
type HTTPDoer interface {
	Do(r *http.Request) (*http.Response, error)
}

// Doer is the interface that wraps the basic Do method.
//
// Do executes an HTTP request plan, following redirects, and returns
// the final execution state (and error, if any). Client implements
// the Doer interface.
type Doer interface {
	Do(p *request.Plan) (*request.Execution, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
type IdleCloser interface {
	CloseIdleConnections()
}
