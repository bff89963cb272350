// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package redirect provides policies deciding whether the client
// follows an HTTP redirect.
//
// A Policy is consulted once per redirect hop with the candidate URL
// taken from the response's Location header and the full history of
// URLs already visited in the chain. Because the whole history is
// available, loops of any length are caught, not only A→B→A bounces.
//
// Use one of the built-in policies, None, Default or Limit, or supply
// your own logic with Custom:
//
//	policy := redirect.Chain(
//		redirect.Hosts("*.example.com", "example.com"),
//		redirect.Limit(5),
//	)
//
// A custom policy is entirely responsible for its own loop and limit
// detection. Compose it with Limit, as above, to keep the built-in
// protections.
package redirect
