// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Plan (describes a logical HTTP
request) and Execution (describes the state of a Plan as it is sent and
its redirects are followed).

A Plan looks like a stripped-down http.Request with the server-side
fields removed and the body fields replaced by a Body value. A Body is
either resettable (backed by bytes, so it can be replayed on a 307 or
308 redirect) or a one-shot stream.

	p, err := request.NewPlan("POST", "https://example.com/upload", "payload")
	...
	e, err := client.Do(p)
	...

A deadline on the plan context bounds the whole execution, including
every redirect hop. Per-hop deadlines come from the client's
timeout.Policy.

An Execution is both the output of httpredir.Client.Do and the input to
redirect policies, timeout policies and event handlers. Execution.Current
is the plan of the hop in flight; Execution.Plan is never modified by
the client.
*/
package request
