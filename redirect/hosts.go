// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package redirect

import (
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

// Hosts constructs a policy which follows redirects only to hosts
// matching at least one of the given glob patterns, and stops on any
// other host. Patterns are matched against the candidate's host name,
// without port, case-insensitively. A '*' never crosses a '.', so
// "*.example.com" matches "api.example.com" but neither "example.com"
// nor "a.b.example.com"; use "**.example.com" for any depth.
//
// Hosts panics if a pattern does not compile. Hosts does no loop or
// limit detection; compose it with Limit using Chain.
func Hosts(patterns ...string) Policy {
	globs := make([]glob.Glob, len(patterns))
	for i, p := range patterns {
		globs[i] = glob.MustCompile(strings.ToLower(p), '.')
	}
	return PolicyFunc(func(next *url.URL, _ []*url.URL) Action {
		host := strings.ToLower(next.Hostname())
		for _, g := range globs {
			if g.Match(host) {
				return Follow
			}
		}
		return Stop
	})
}

// SameHost is a policy which follows a redirect only if the candidate
// has the same host (including port) as the URL being redirected.
var SameHost Policy = PolicyFunc(sameHost)

func sameHost(next *url.URL, via []*url.URL) Action {
	if len(via) == 0 {
		return Follow
	}
	last := via[len(via)-1]
	if strings.EqualFold(next.Host, last.Host) {
		return Follow
	}
	return Stop
}
